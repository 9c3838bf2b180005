// internal/service/profile_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sik-configurator/internal/model"
	"sik-configurator/internal/radio"
	"sik-configurator/internal/repository"
	"sik-configurator/internal/utils"
	"sik-configurator/pkg/sikparams"
)

var (
	// ErrInvalidProfile is returned when a profile has no name, no
	// parameters, or values the catalog rejects.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrNoProfiles is returned when an import holds no usable entry.
	ErrNoProfiles = errors.New("no valid profiles found")
)

// RadioClient is the part of the radio session a profile needs.
type RadioClient interface {
	GetParameters() ([]radio.ParameterEntry, error)
	SetParameter(identifier, value string) (*radio.ParameterEntry, error)
	SaveParameters() error
	Catalog() *sikparams.Catalog
}

// ProfileService manages stored radio configurations
type ProfileService struct {
	repo        repository.ProfileRepository
	radio       RadioClient
	logger      *utils.ServiceLogger
	auditLogger *utils.AuditLogger
	now         func() time.Time
}

// NewProfileService creates a new profile service instance
func NewProfileService(repo repository.ProfileRepository, radio RadioClient, logger *zap.Logger) *ProfileService {
	return &ProfileService{
		repo:        repo,
		radio:       radio,
		logger:      utils.NewServiceLogger(logger, "profile-service"),
		auditLogger: utils.NewAuditLogger(logger),
		now:         time.Now,
	}
}

// CreateProfileRequest represents profile creation request
type CreateProfileRequest struct {
	Name       string            `json:"name" binding:"required"`
	Parameters map[string]string `json:"parameters,omitempty"`
	FromRadio  bool              `json:"from_radio"`
}

// UpdateProfileRequest represents profile update request. Nil and empty
// fields are left unchanged.
type UpdateProfileRequest struct {
	Name       *string           `json:"name,omitempty"`
	Parameters map[string]string `json:"parameters,omitempty"`
	FromRadio  bool              `json:"from_radio"`
}

// ApplyProfileRequest represents profile apply request
type ApplyProfileRequest struct {
	Persist bool `json:"persist"`
}

// ParameterResult is the outcome of writing one register
type ParameterResult struct {
	Code      string                `json:"code"`
	Value     string                `json:"value"`
	Success   bool                  `json:"success"`
	Skipped   bool                  `json:"skipped,omitempty"`
	Applied   *radio.ParameterEntry `json:"applied,omitempty"`
	ErrorCode string                `json:"error_code,omitempty"`
	Error     string                `json:"error,omitempty"`
}

// ApplyResult reports the writes performed by Apply
type ApplyResult struct {
	ProfileID uuid.UUID         `json:"profile_id"`
	Results   []ParameterResult `json:"results"`
	Applied   int               `json:"applied"`
	Persisted bool              `json:"persisted"`
	Success   bool              `json:"success"`
}

// List returns all profiles, most recently updated first
func (ps *ProfileService) List(ctx context.Context) ([]*model.Profile, error) {
	profiles, err := ps.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

// Get returns a single profile
func (ps *ProfileService) Get(ctx context.Context, id uuid.UUID) (*model.Profile, error) {
	return ps.repo.GetByID(ctx, id)
}

// Create stores a new profile from the request body or, when the body has
// no parameters or FromRadio is set, from the connected radio.
func (ps *ProfileService) Create(ctx context.Context, req *CreateProfileRequest) (*model.Profile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidProfile)
	}

	parameters, err := ps.resolveParameters(req.Parameters, req.FromRadio)
	if err != nil {
		return nil, err
	}

	now := ps.now().UTC()
	profile := &model.Profile{
		ID:         uuid.New(),
		Name:       name,
		Parameters: parameters,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := ps.repo.Create(ctx, profile); err != nil {
		ps.logger.Error("Failed to create profile", zap.Error(err))
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	ps.auditLogger.LogProfileChange("create", profile.ID.String(), profile.Name)
	ps.logger.Info("Profile created",
		zap.String("profile_id", profile.ID.String()),
		zap.Int("parameters", len(profile.Parameters)),
	)
	return profile, nil
}

// Update renames a profile or replaces its parameters
func (ps *ProfileService) Update(ctx context.Context, id uuid.UUID, req *UpdateProfileRequest) (*model.Profile, error) {
	profile, err := ps.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrInvalidProfile)
		}
		profile.Name = name
	}

	if req.FromRadio || len(req.Parameters) > 0 {
		parameters, err := ps.resolveParameters(req.Parameters, req.FromRadio)
		if err != nil {
			return nil, err
		}
		profile.Parameters = parameters
	}

	profile.UpdatedAt = ps.now().UTC()
	if err := ps.repo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	ps.auditLogger.LogProfileChange("update", profile.ID.String(), profile.Name)
	return profile, nil
}

// Delete removes a profile
func (ps *ProfileService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ps.repo.Delete(ctx, id); err != nil {
		return err
	}
	ps.auditLogger.LogProfileChange("delete", id.String(), "")
	return nil
}

// Import parses data in the given format and stores every entry that has
// parameters under a fresh id.
func (ps *ProfileService) Import(ctx context.Context, format string, data []byte) ([]*model.Profile, error) {
	profiles, err := DecodeProfiles(format, data)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, ErrNoProfiles
	}

	now := ps.now().UTC()
	imported := make([]*model.Profile, 0, len(profiles))
	for _, profile := range profiles {
		profile.ID = uuid.New()
		profile.CreatedAt = now
		profile.UpdatedAt = now
		if err := ps.repo.Create(ctx, profile); err != nil {
			return imported, fmt.Errorf("failed to import profile %q: %w", profile.Name, err)
		}
		ps.auditLogger.LogProfileChange("import", profile.ID.String(), profile.Name)
		imported = append(imported, profile)
	}

	ps.logger.Info("Profiles imported", zap.Int("count", len(imported)), zap.String("format", format))
	return imported, nil
}

// Export renders a profile for download and returns the suggested file name
func (ps *ProfileService) Export(ctx context.Context, id uuid.UUID, format string) ([]byte, string, error) {
	profile, err := ps.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	data, err := EncodeProfile(format, profile)
	if err != nil {
		return nil, "", err
	}
	return data, ExportFileName(profile.Name, format), nil
}

// Apply writes the profile to the connected radio in register order. It
// stops at the first failed write and returns the partial result with the
// radio error. Read-only registers are reported as skipped and never
// written. With persist set, AT&W follows a fully successful write.
func (ps *ProfileService) Apply(ctx context.Context, id uuid.UUID, req *ApplyProfileRequest) (*ApplyResult, error) {
	profile, err := ps.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	codes := profile.Parameters.Codes()
	catalog := ps.radio.Catalog()
	var problems []string
	for _, code := range codes {
		if catalog.ReadOnly(code) {
			continue
		}
		if err := catalog.Validate(code, profile.Parameters[code]); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(problems, "; "))
	}

	result := &ApplyResult{
		ProfileID: profile.ID,
		Results:   make([]ParameterResult, 0, len(codes)),
	}

	applyErr := ps.applyParameters(profile, codes, catalog, result)
	if applyErr == nil && req != nil && req.Persist {
		if applyErr = ps.radio.SaveParameters(); applyErr == nil {
			result.Persisted = true
		}
	}
	result.Success = applyErr == nil

	ps.auditLogger.LogProfileApplied(profile.ID.String(), result.Applied, result.Persisted, applyErr)
	return result, applyErr
}

func (ps *ProfileService) applyParameters(profile *model.Profile, codes []string, catalog *sikparams.Catalog, result *ApplyResult) error {
	for _, code := range codes {
		value := profile.Parameters[code]
		if catalog.ReadOnly(code) {
			result.Results = append(result.Results, ParameterResult{
				Code:    code,
				Value:   value,
				Success: true,
				Skipped: true,
			})
			continue
		}
		entry, err := ps.radio.SetParameter(code, value)
		if err != nil {
			result.Results = append(result.Results, ParameterResult{
				Code:      code,
				Value:     value,
				ErrorCode: radio.Code(err),
				Error:     err.Error(),
			})
			ps.logger.Warn("Profile apply stopped",
				zap.String("profile_id", profile.ID.String()),
				zap.String("code", code),
				zap.Error(err),
			)
			return err
		}

		result.Results = append(result.Results, ParameterResult{
			Code:    code,
			Value:   value,
			Success: true,
			Applied: entry,
		})
		result.Applied++
	}
	return nil
}

// resolveParameters normalizes the given parameters or, when none are
// given or fromRadio is set, reads the writable registers from the radio.
func (ps *ProfileService) resolveParameters(given map[string]string, fromRadio bool) (model.ParameterSet, error) {
	if !fromRadio && len(given) > 0 {
		parameters := make(model.ParameterSet, len(given))
		for code, value := range given {
			n, err := radio.NormalizeIdentifier(code)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
			}
			parameters["S"+n] = strings.TrimSpace(value)
		}
		return parameters, nil
	}

	entries, err := ps.radio.GetParameters()
	if err != nil {
		return nil, err
	}
	parameters := make(model.ParameterSet, len(entries))
	catalog := ps.radio.Catalog()
	for _, entry := range entries {
		if catalog.ReadOnly(entry.Code) {
			continue
		}
		parameters[entry.Code] = entry.Value
	}
	if len(parameters) == 0 {
		return nil, fmt.Errorf("%w: radio reported no parameters", ErrInvalidProfile)
	}
	return parameters, nil
}
