package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/rgomide/gerenciador-torneio-sub001/models"
	"github.com/rgomide/gerenciador-torneio-sub001/storage"
)

func validateDateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrValidationFailed)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: start %s, end %s", ErrInvalidDateRange,
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}

// --- Хелперы для заполнения URL логотипов ---

func populateInstitutionLogoURL(institution *models.Institution, uploader storage.FileUploader) {
	if institution != nil && institution.LogoKey != nil && *institution.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*institution.LogoKey)
		if url != "" {
			institution.LogoURL = &url
		}
	}
}

func populateTeamLogoURL(team *models.Team, uploader storage.FileUploader) {
	if team != nil && team.LogoKey != nil && *team.LogoKey != "" && uploader != nil {
		url := uploader.GetPublicURL(*team.LogoKey)
		if url != "" {
			team.LogoURL = &url
		}
	}
}

// getExtensionFromContentType переводит MIME-тип загружаемого логотипа в расширение файла.
func getExtensionFromContentType(contentType string) (string, error) {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/gif":
		return ".gif", nil
	case "image/webp":
		return ".webp", nil
	default:
		parts := strings.Split(contentType, "/")
		if len(parts) == 2 && strings.HasPrefix(parts[0], "image") && parts[1] != "" {
			return "." + strings.Split(parts[1], "+")[0], nil
		}
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLogoFormat, contentType)
	}
}
