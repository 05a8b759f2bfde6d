package http

import (
	"net/http"

	"dental-lab-backend/internal/delivery/http/handler"
	"dental-lab-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router          *mux.Router
	authHandler     *handler.AuthHandler
	caseHandler     *handler.CaseHandler
	workflowHandler *handler.WorkflowHandler
	billingHandler  *handler.BillingHandler
	dentistHandler  *handler.DentistHandler
	staffHandler    *handler.StaffHandler
	roleHandler     *handler.RoleHandler
	authMiddleware  *middleware.AuthMiddleware
	corsMiddleware  *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	caseHandler *handler.CaseHandler,
	workflowHandler *handler.WorkflowHandler,
	billingHandler *handler.BillingHandler,
	dentistHandler *handler.DentistHandler,
	staffHandler *handler.StaffHandler,
	roleHandler *handler.RoleHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:          mux.NewRouter(),
		authHandler:     authHandler,
		caseHandler:     caseHandler,
		workflowHandler: workflowHandler,
		billingHandler:  billingHandler,
		dentistHandler:  dentistHandler,
		staffHandler:    staffHandler,
		roleHandler:     roleHandler,
		authMiddleware:  authMiddleware,
		corsMiddleware:  corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)
	auth.HandleFunc("/forgot-password", r.authHandler.ForgotPassword).Methods(http.MethodPost)
	auth.HandleFunc("/reset-password", r.authHandler.ResetPassword).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	authProtected.HandleFunc("/password", r.authHandler.UpdatePassword).Methods(http.MethodPut)

	// Case routes: reads for any authenticated user, writes for lab staff.
	cases := api.PathPrefix("/cases").Subrouter()
	cases.Use(r.authMiddleware.Authenticate)
	cases.Handle("", middleware.RequireStaff(http.HandlerFunc(r.caseHandler.Create))).Methods(http.MethodPost)
	cases.HandleFunc("", r.caseHandler.List).Methods(http.MethodGet)
	cases.HandleFunc("/{id}", r.caseHandler.Get).Methods(http.MethodGet)
	cases.Handle("/{id}", middleware.RequireStaff(http.HandlerFunc(r.caseHandler.Update))).Methods(http.MethodPut)
	cases.Handle("/{id}", middleware.RequireAdmin(http.HandlerFunc(r.caseHandler.Delete))).Methods(http.MethodDelete)

	// Case notes and files
	cases.HandleFunc("/{id}/notes", r.caseHandler.AddNote).Methods(http.MethodPost)
	cases.HandleFunc("/{id}/notes", r.caseHandler.ListNotes).Methods(http.MethodGet)
	cases.HandleFunc("/{id}/files", r.caseHandler.UploadFile).Methods(http.MethodPost)
	cases.HandleFunc("/{id}/files", r.caseHandler.ListFiles).Methods(http.MethodGet)
	cases.Handle("/{id}/files/{fileId}", middleware.RequireStaff(http.HandlerFunc(r.caseHandler.DeleteFile))).Methods(http.MethodDelete)

	// Workflow stages
	cases.Handle("/{id}/stages", middleware.RequireStaff(http.HandlerFunc(r.workflowHandler.CreateStage))).Methods(http.MethodPost)
	cases.HandleFunc("/{id}/stages", r.workflowHandler.ListStages).Methods(http.MethodGet)
	cases.HandleFunc("/{id}/stages/stats", r.workflowHandler.GetStats).Methods(http.MethodGet)

	stages := api.PathPrefix("/stages").Subrouter()
	stages.Use(r.authMiddleware.Authenticate)
	stages.Handle("/{stageId}", middleware.RequireStaff(http.HandlerFunc(r.workflowHandler.UpdateStage))).Methods(http.MethodPut)
	stages.Handle("/{stageId}", middleware.RequireStaff(http.HandlerFunc(r.workflowHandler.DeleteStage))).Methods(http.MethodDelete)

	// Billing
	invoices := api.PathPrefix("/invoices").Subrouter()
	invoices.Use(r.authMiddleware.Authenticate)
	invoices.Handle("", middleware.RequireStaff(http.HandlerFunc(r.billingHandler.CreateInvoice))).Methods(http.MethodPost)
	invoices.HandleFunc("", r.billingHandler.ListInvoices).Methods(http.MethodGet)
	invoices.HandleFunc("/{id}", r.billingHandler.GetInvoice).Methods(http.MethodGet)
	invoices.Handle("/{id}", middleware.RequireStaff(http.HandlerFunc(r.billingHandler.UpdateInvoice))).Methods(http.MethodPut)
	invoices.Handle("/{id}/payments", middleware.RequireStaff(http.HandlerFunc(r.billingHandler.CreatePayment))).Methods(http.MethodPost)
	invoices.HandleFunc("/{id}/payments", r.billingHandler.ListPayments).Methods(http.MethodGet)

	// Dentists
	dentists := api.PathPrefix("/dentists").Subrouter()
	dentists.Use(r.authMiddleware.Authenticate)
	dentists.Handle("", middleware.RequireStaff(http.HandlerFunc(r.dentistHandler.Register))).Methods(http.MethodPost)
	dentists.Handle("", middleware.RequireStaff(http.HandlerFunc(r.dentistHandler.List))).Methods(http.MethodGet)
	dentists.HandleFunc("/{id}", r.dentistHandler.Get).Methods(http.MethodGet)
	dentists.HandleFunc("/{id}", r.dentistHandler.Update).Methods(http.MethodPut)

	// Dentist applications: submission by the dentist, review by admins.
	applications := api.PathPrefix("/applications").Subrouter()
	applications.Use(r.authMiddleware.Authenticate)
	applications.HandleFunc("", r.dentistHandler.SubmitApplication).Methods(http.MethodPost)
	applications.Handle("", middleware.RequireAdmin(http.HandlerFunc(r.dentistHandler.ListApplications))).Methods(http.MethodGet)
	applications.Handle("/{id}/review", middleware.RequireAdmin(http.HandlerFunc(r.dentistHandler.ReviewApplication))).Methods(http.MethodPost)

	// Staff management (admin only)
	staff := api.PathPrefix("/staff").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireAdmin)
	staff.HandleFunc("", r.staffHandler.Create).Methods(http.MethodPost)
	staff.HandleFunc("", r.staffHandler.List).Methods(http.MethodGet)
	staff.HandleFunc("/{id}", r.staffHandler.Get).Methods(http.MethodGet)
	staff.HandleFunc("/{id}", r.staffHandler.Update).Methods(http.MethodPut)
	staff.HandleFunc("/{id}", r.staffHandler.Deactivate).Methods(http.MethodDelete)

	// Role and permission management (admin only)
	roles := api.PathPrefix("/roles").Subrouter()
	roles.Use(r.authMiddleware.Authenticate)
	roles.Use(middleware.RequireAdmin)
	roles.HandleFunc("", r.roleHandler.Create).Methods(http.MethodPost)
	roles.HandleFunc("", r.roleHandler.List).Methods(http.MethodGet)
	roles.HandleFunc("/{id}", r.roleHandler.Get).Methods(http.MethodGet)
	roles.HandleFunc("/{id}", r.roleHandler.Delete).Methods(http.MethodDelete)
	roles.HandleFunc("/{id}/permissions", r.roleHandler.ReplacePermissions).Methods(http.MethodPut)
	roles.HandleFunc("/assign", r.roleHandler.Assign).Methods(http.MethodPost)
	roles.HandleFunc("/{roleId}/users/{userId}", r.roleHandler.Remove).Methods(http.MethodDelete)

	permissions := api.PathPrefix("/permissions").Subrouter()
	permissions.Use(r.authMiddleware.Authenticate)
	permissions.Use(middleware.RequireAdmin)
	permissions.HandleFunc("", r.roleHandler.CreatePermission).Methods(http.MethodPost)
	permissions.HandleFunc("", r.roleHandler.ListPermissions).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
