package conf

import "fmt"

// ValidateSettings checks settings for values the pipeline cannot work with.
func ValidateSettings(settings *Settings) error {
	switch settings.Cnet.Version {
	case "v4", "v5":
	default:
		return fmt.Errorf("cnet.version must be v4 or v5, got %q", settings.Cnet.Version)
	}

	switch settings.Review.Timescale {
	case "weekly", "daily":
	default:
		return fmt.Errorf("review.timescale must be weekly or daily, got %q", settings.Review.Timescale)
	}

	if settings.Summary.Workers < 0 {
		return fmt.Errorf("summary.workers must not be negative, got %d", settings.Summary.Workers)
	}

	return nil
}
