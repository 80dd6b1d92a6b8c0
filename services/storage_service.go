package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"petshop-server/config"
)

// Storage folders, one namespace per entity type
const (
	FolderProducts    = "petshop/products"
	FolderBranches    = "petshop/branches"
	FolderGrooming    = "petshop/grooming"
	FolderHotelRooms  = "petshop/hotel-rooms"
	FolderAddons      = "petshop/addons"
	FolderPhotoshoots = "petshop/photoshoots"
	FolderDiscounts   = "petshop/discounts"
)

// StorageService wraps the Cloudinary uploader
type StorageService struct {
	cld *cloudinary.Cloudinary
}

// NewStorageService initializes Cloudinary from config
func NewStorageService() (*StorageService, error) {
	cfg := config.AppConfig.Cloudinary
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary is not configured")
	}

	cloudinaryURL := fmt.Sprintf("cloudinary://%s:%s@%s", cfg.APIKey, cfg.APISecret, cfg.CloudName)
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &StorageService{cld: cld}, nil
}

// UploadImage stores an image under the given folder and returns its public
// URL and public ID. The public ID is kept on the row so a replaced image
// can be deleted later.
func (s *StorageService) UploadImage(ctx context.Context, header *multipart.FileHeader, folder string) (string, string, error) {
	file, err := header.Open()
	if err != nil {
		return "", "", err
	}
	defer file.Close()

	overwrite := true
	unique := true
	result, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         folder,
		PublicID:       strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename)),
		Overwrite:      &overwrite,
		UniqueFilename: &unique,
		ResourceType:   "image",
	})
	if err != nil {
		return "", "", err
	}

	return result.SecureURL, result.PublicID, nil
}

// DeleteImage removes a stored image by public ID. Callers treat failures
// as best-effort: a dangling stored file is preferred over failing the
// row write that replaced it.
func (s *StorageService) DeleteImage(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	return err
}

// DeleteImageQuietly logs and swallows delete failures.
func (s *StorageService) DeleteImageQuietly(ctx context.Context, publicID string) {
	if err := s.DeleteImage(ctx, publicID); err != nil {
		log.Printf("⚠️ Failed to delete stored image %s: %v", publicID, err)
	}
}
