package service

import (
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/kickslife/storefront/internal/config"
	"github.com/kickslife/storefront/internal/constants"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9.\-_]`)

// UploadService 文件上传服务
type UploadService struct {
	cfg *config.UploadConfig
	now func() time.Time
}

// NewUploadService 创建文件上传服务实例
func NewUploadService(cfg *config.UploadConfig) *UploadService {
	return &UploadService{cfg: cfg, now: time.Now}
}

// SaveFile 保存上传文件，返回可访问的相对 URL
func (s *UploadService) SaveFile(file *multipart.FileHeader, scene string) (string, error) {
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return "", fmt.Errorf("%w: max %d MB", ErrUploadFileTooLarge, s.cfg.MaxSize/1024/1024)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.AllowedExtensions) > 0 && (ext == "" || !isAllowedExtension(ext, s.cfg.AllowedExtensions)) {
		return "", fmt.Errorf("%w: %s", ErrUploadExtensionNotAllowed, ext)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	buffer := make([]byte, 512)
	n, err := src.Read(buffer)
	if err != nil && err != io.EOF {
		return "", err
	}
	contentType := http.DetectContentType(buffer[:n])
	if len(s.cfg.AllowedTypes) > 0 && !isAllowedContentType(contentType, s.cfg.AllowedTypes) {
		return "", fmt.Errorf("%w: %s", ErrUploadTypeNotAllowed, contentType)
	}
	if strings.HasPrefix(contentType, "image/") && contentType != "image/webp" {
		if _, err := src.Seek(0, io.SeekStart); err != nil {
			return "", err
		}
		if _, _, err := image.DecodeConfig(src); err != nil {
			return "", fmt.Errorf("%w: %v", ErrUploadTypeNotAllowed, err)
		}
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	now := s.now()
	filename := BuildUploadFilename(file.Filename, now)
	year := now.Format("2006")
	month := now.Format("01")
	normalizedScene := normalizeUploadScene(scene)
	baseDir := strings.TrimSpace(s.cfg.Dir)
	if baseDir == "" {
		baseDir = "uploads"
	}
	savePath := filepath.Join(baseDir, normalizedScene, year, month, filename)
	if err := os.MkdirAll(filepath.Dir(savePath), 0755); err != nil {
		return "", err
	}
	dst, err := os.Create(savePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return "/" + path.Join("uploads", normalizedScene, year, month, filename), nil
}

// BuildUploadFilename 生成 <毫秒时间戳>-<清洗后的原文件名>
func BuildUploadFilename(original string, now time.Time) string {
	name := unsafeFilenameChars.ReplaceAllString(filepath.Base(original), "_")
	name = strings.TrimLeft(name, ".")
	if name == "" {
		name = "file"
	}
	return fmt.Sprintf("%d-%s", now.UnixMilli(), name)
}

func normalizeUploadScene(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case constants.UploadSceneProduct:
		return constants.UploadSceneProduct
	default:
		return constants.UploadSceneCommon
	}
}

func isAllowedContentType(contentType string, allowed []string) bool {
	for _, item := range allowed {
		if strings.EqualFold(contentType, strings.TrimSpace(item)) {
			return true
		}
	}
	return false
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if ext == normalized {
			return true
		}
	}
	return false
}
