package service

import (
	"context"
	"fmt"
	"io"

	"dental-lab-backend/config"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// FileStorage is the boundary to the external object store. Case attachments
// are keyed under cases/{caseID}/.
type FileStorage interface {
	Upload(ctx context.Context, file io.Reader, publicID string) (url string, err error)
	Delete(ctx context.Context, publicID string) error
}

type cloudinaryStorage struct {
	client *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStorage(cfg config.StorageConfig) (FileStorage, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to init cloudinary: %w", err)
	}
	return &cloudinaryStorage{client: cld, folder: cfg.Folder}, nil
}

func (s *cloudinaryStorage) Upload(ctx context.Context, file io.Reader, publicID string) (string, error) {
	resp, err := s.client.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID: publicID,
		Folder:   s.folder,
	})
	if err != nil {
		return "", err
	}
	return resp.SecureURL, nil
}

func (s *cloudinaryStorage) Delete(ctx context.Context, publicID string) error {
	_, err := s.client.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	return err
}

// CaseFilePath builds the storage key for a case attachment.
func CaseFilePath(caseID, fileName string) string {
	return fmt.Sprintf("cases/%s/%s", caseID, fileName)
}
