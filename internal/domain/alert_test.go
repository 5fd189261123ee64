package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestAlertIDRoundTrip(t *testing.T) {
	itemID := uuid.New()
	alertID := AlertIDFor(itemID)

	got, ok := ParseAlertID(alertID)
	if !ok {
		t.Fatalf("ParseAlertID(%q) not ok", alertID)
	}
	if got != itemID {
		t.Errorf("item id = %v, want %v", got, itemID)
	}
}

func TestAlertIDDeterministic(t *testing.T) {
	itemID := uuid.MustParse("a3bb189e-8bf9-3888-9912-ace4e6543002")

	if a, b := AlertIDFor(itemID), AlertIDFor(itemID); a != b {
		t.Errorf("derivation not stable: %q != %q", a, b)
	}
	if want := AlertID("alerta:item:a3bb189e-8bf9-3888-9912-ace4e6543002"); AlertIDFor(itemID) != want {
		t.Errorf("AlertIDFor = %q, want %q", AlertIDFor(itemID), want)
	}
}

func TestParseAlertID_Foreign(t *testing.T) {
	tests := []struct {
		name string
		id   AlertID
	}{
		{"no prefix", AlertID("calendar:event:" + uuid.New().String())},
		{"empty", AlertID("")},
		{"prefix only", AlertID(AlertIDPrefix)},
		{"garbage uuid", AlertID(AlertIDPrefix + "not-a-uuid")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := ParseAlertID(tt.id); ok {
				t.Errorf("ParseAlertID(%q) ok, want foreign", tt.id)
			}
			if tt.id.Owned() {
				t.Errorf("Owned(%q) = true", tt.id)
			}
		})
	}
}
