package ports

import "context"

// Transformation describes how the image host reshapes an upload.
type Transformation struct {
	Width   int
	Height  int
	Quality int // JPEG quality, 1-100
}

// PhotoUpload is a raw image received from a client.
type PhotoUpload struct {
	Filename string
	Data     []byte
}

// PhotoHost stores and removes images.
type PhotoHost interface {
	Upload(ctx context.Context, photo PhotoUpload, t Transformation) (*UploadedPhoto, error)
	Delete(ctx context.Context, publicID string) error
}

// UploadedPhoto is where the host put an image.
type UploadedPhoto struct {
	URL      string
	PublicID string
}

// PhotoCleanupJob asks for the removal of images that no longer back a product.
type PhotoCleanupJob struct {
	ProductID string
	PublicIDs []string
}

// PhotoCleaner accepts clean-up work without blocking the request on the
// image host.
type PhotoCleaner interface {
	Enqueue(job PhotoCleanupJob)
}
