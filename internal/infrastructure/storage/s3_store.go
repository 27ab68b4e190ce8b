package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/renacer/clinica-api/internal/application/billing"
	"github.com/renacer/clinica-api/pkg/config"
)

var _ billing.ObjectStore = (*S3Store)(nil)

// S3Store guarda comprobantes y fotos en un bucket S3 (o compatible) y
// devuelve URLs de lectura prefirmadas.
type S3Store struct {
	client        *s3.Client
	presigner     *s3.PresignClient
	bucket        string
	presignExpiry time.Duration
}

// NewS3Store construye el adaptador con las credenciales del entorno
// (cadena por defecto del SDK: variables AWS_*, perfil o rol).
func NewS3Store(ctx context.Context, cfg config.StorageConfig) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg)
	return &S3Store{
		client:        client,
		presigner:     s3.NewPresignClient(client),
		bucket:        cfg.Bucket,
		presignExpiry: time.Duration(cfg.PresignExpiry) * time.Minute,
	}, nil
}

// Upload sube el archivo bajo la clave {entidad}/{timestamp}-{filename} y
// devuelve una URL prefirmada de lectura para guardar en la fila dueña.
func (s *S3Store) Upload(ctx context.Context, entidad, filename, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("%s/%d-%s", entidad, time.Now().UnixMilli(), filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	presigned, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(po *s3.PresignOptions) {
		po.Expires = s.presignExpiry
	})
	if err != nil {
		return "", fmt.Errorf("presign object %s: %w", key, err)
	}
	return presigned.URL, nil
}
