package notifications

import "github.com/leapscholar/leappulse/internal/models"

// Notifier delivers alert digests for critical mentions.
type Notifier interface {
	SendCriticalAlert(brandName string, mentions []models.Mention) error
}
