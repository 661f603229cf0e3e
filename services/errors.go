package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed        = errors.New("validation failed")
	ErrNameRequired            = errors.New("name is required")
	ErrPasswordTooShort        = errors.New("password is too short")
	ErrInvalidDateRange        = errors.New("end date must be after start date")
	ErrMatchAlreadyFinished    = errors.New("match is already finished")
	ErrScoreForFinishedMatch   = errors.New("cannot record scores for a finished match")
	ErrPlayerNotInTeam         = errors.New("player does not belong to the team")
	ErrInvalidRole             = errors.New("invalid user role")
	ErrUnsupportedLogoFormat   = errors.New("unsupported logo content type")

	// Ошибки конфликтов
	ErrInstitutionNameConflict = errors.New("institution name already exists")
	ErrTeamNameConflict        = errors.New("team name is already in use within the unit")
	ErrRegistrationConflict    = errors.New("team or player is already registered for this match")
	ErrUserEmailConflict       = errors.New("email address is already in use")
	ErrEntityReferenced        = errors.New("entity is referenced by other records and cannot be deleted")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей (дублируют ErrNotFound, но дают контекст)
	ErrInstitutionNotFound   = errors.New("institution not found")
	ErrUnitNotFound          = errors.New("unit not found")
	ErrEventNotFound         = errors.New("event not found")
	ErrTournamentNotFound    = errors.New("tournament not found")
	ErrTeamNotFound          = errors.New("team not found")
	ErrPlayerNotFound        = errors.New("player not found")
	ErrMatchNotFound         = errors.New("match not found")
	ErrParticipationNotFound = errors.New("match participation not found")
	ErrScoreNotFound         = errors.New("match score not found")
	ErrUserNotFound          = errors.New("user not found")
)
