package parcel

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/pkg/errs"
)

const trackingIDPrefix = "TRK"

// TrackingID is the human-facing parcel identifier, e.g. "TRK-20250301-9F3A0C12".
// Global uniqueness is enforced by the store.
type TrackingID struct {
	value string
}

// GenerateTrackingID builds a tracking id from the creation date and 32 random bits.
func GenerateTrackingID(now time.Time) TrackingID {
	raw := kernel.NewUUID().Bytes()
	suffix := strings.ToUpper(hex.EncodeToString(raw[:4]))
	return TrackingID{value: fmt.Sprintf("%s-%s-%s", trackingIDPrefix, now.UTC().Format("20060102"), suffix)}
}

// TrackingIDFromString restores a persisted tracking id.
func TrackingIDFromString(s string) (TrackingID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TrackingID{}, errs.NewValueIsRequiredError("trackingId")
	}
	return TrackingID{value: s}, nil
}

func (t TrackingID) String() string {
	return t.value
}

func (t TrackingID) IsZero() bool {
	return t.value == ""
}

func (t TrackingID) Validate() error {
	if t.IsZero() {
		return errs.NewValueIsRequiredError("trackingId")
	}
	return nil
}
