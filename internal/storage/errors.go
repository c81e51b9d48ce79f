package storage

import (
	"errors"

	"github.com/minio/minio-go/v7"
)

var (
	ErrObjectNotFound = errors.New("storage: object not found")
	ErrBucketNotFound = errors.New("storage: bucket not found")
	ErrUnauthorized   = errors.New("storage: unauthorized")
)

// mapMinioErr translates minio error codes into package sentinels so callers
// can use errors.Is without importing the minio SDK.
func mapMinioErr(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey":
		return ErrObjectNotFound
	case "NoSuchBucket":
		return ErrBucketNotFound
	case "AccessDenied":
		return ErrUnauthorized
	}
	return err
}
