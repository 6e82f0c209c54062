package services

import (
	"encoding/base64"

	"github.com/taskman/taskman/internal/models"
	"github.com/taskman/taskman/pkg/response"
	"gorm.io/gorm"
)

type FileService struct {
	db *gorm.DB
}

func NewFileService(db *gorm.DB) *FileService {
	return &FileService{db: db}
}

type CreateFileRequest struct {
	ProjectID uint   `json:"projectId"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	URL       string `json:"url"`
	Content   string `json:"content"` // base64 payload for small files
	MimeType  string `json:"mimeType"`
}

// DownloadResult resolves either to inline bytes or an external URL.
type DownloadResult struct {
	Name        string
	MimeType    string
	Data        []byte
	RedirectURL string
}

func (s *FileService) preload() *gorm.DB {
	return s.db.Preload("UploadedBy").Preload("Project")
}

// ListByProject returns a project's files with uploader and project
// joined in.
func (s *FileService) ListByProject(projectID uint) ([]models.File, error) {
	var files []models.File
	if err := s.preload().
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&files).Error; err != nil {
		return nil, err
	}
	return files, nil
}

// GetByID returns one file record.
func (s *FileService) GetByID(id uint) (*models.File, error) {
	var file models.File
	if err := s.preload().First(&file, id).Error; err != nil {
		if isNotFound(err) {
			return nil, response.NewNotFound("File not found")
		}
		return nil, err
	}
	return &file, nil
}

// Create registers an uploaded file.
func (s *FileService) Create(req *CreateFileRequest, uploaderID uint) (*models.File, error) {
	if req.Name == "" {
		return nil, response.NewBadRequest("File name is required")
	}
	if req.ProjectID == 0 {
		return nil, response.NewBadRequest("Project is required")
	}
	if req.Content != "" {
		if _, err := base64.StdEncoding.DecodeString(req.Content); err != nil {
			return nil, response.NewBadRequest("File content must be base64 encoded")
		}
	}

	file := models.File{
		Name:         req.Name,
		ProjectID:    req.ProjectID,
		Size:         req.Size,
		URL:          req.URL,
		Content:      req.Content,
		MimeType:     req.MimeType,
		UploadedByID: uploaderID,
	}
	if err := s.db.Create(&file).Error; err != nil {
		return nil, err
	}

	return s.GetByID(file.ID)
}

// Download resolves a file to its inline content or an external URL.
func (s *FileService) Download(id uint) (*DownloadResult, error) {
	file, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if file.Content != "" {
		data, err := base64.StdEncoding.DecodeString(file.Content)
		if err != nil {
			return nil, response.NewServerError("Stored file content is corrupted")
		}
		mimeType := file.MimeType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		return &DownloadResult{Name: file.Name, MimeType: mimeType, Data: data}, nil
	}

	if file.URL != "" {
		return &DownloadResult{Name: file.Name, RedirectURL: file.URL}, nil
	}

	return nil, response.NewNotFound("File has no downloadable content")
}

// Delete removes a file record outright.
func (s *FileService) Delete(id uint) error {
	result := s.db.Delete(&models.File{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NewNotFound("File not found")
	}
	return nil
}
