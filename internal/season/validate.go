package season

import "fmt"

// ValidationError marks a campaign file constraint violation.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required campaign constraints.
func Validate(cfg *Config) error {
	if cfg.Meta.CampaignID == "" {
		return ValidationError{"meta.campaign_id", "required"}
	}
	if cfg.Meta.Crop == "" {
		return ValidationError{"meta.crop", "required"}
	}

	if err := validateYears("training.years", cfg.Training.Years); err != nil {
		return err
	}
	if err := validateYears("scoring.years", cfg.Scoring.Years); err != nil {
		return err
	}

	return nil
}

func validateYears(field string, years []int) error {
	if len(years) == 0 {
		return ValidationError{field, "required"}
	}

	seen := make(map[int]struct{}, len(years))
	for _, y := range years {
		if y < 1900 || y > 2100 {
			return ValidationError{field, fmt.Sprintf("year %d out of range", y)}
		}
		if _, dup := seen[y]; dup {
			return ValidationError{field, fmt.Sprintf("duplicate year %d", y)}
		}
		seen[y] = struct{}{}
	}
	return nil
}
