package sikparams_test

import (
	"errors"
	"reflect"
	"testing"

	"sik-configurator/pkg/sikparams"
)

func TestRender(t *testing.T) {
	catalog := sikparams.Default()

	tests := []struct {
		name  string
		code  string
		value string
		want  string
	}{
		{"alias", "S0", "25", "AT Command Mode"},
		{"enum label", "S1", "57", "57600 bps"},
		{"enum without match falls through", "S2", "7", "7"},
		{"bool enabled", "S5", "1", "Enabled"},
		{"bool disabled", "S13", " 0 ", "Disabled"},
		{"bool unknown value", "S6", "2", "2"},
		{"frequency in MHz", "S8", "915000", "915.000 MHz"},
		{"fractional frequency", "S9", "927125", "927.125 MHz"},
		{"unit appended", "S4", "20", "20 dBm"},
		{"percent", "S11", "100", "100%"},
		{"unit already present", "S15", "131 ms", "131 ms"},
		{"alias wins over plain int", "S12", "0", "Disabled"},
		{"plain int", "S12", "40", "40"},
		{"unknown code", "S99", "  7 ", "7"},
		{"lower-case code", "s3", "25", "25"},
		{"empty value", "S4", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := catalog.Render(tt.code, tt.value)
			if got != tt.want {
				t.Errorf("Render(%q, %q) = %q, want %q", tt.code, tt.value, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	catalog := sikparams.Default()

	tests := []struct {
		code    string
		value   string
		wantErr bool
	}{
		{"S3", "25", false},
		{"S3", "500", true},
		{"S4", "-1", true},
		{"S4", "abc", true},
		{"S5", "1", false},
		{"S5", "yes", true},
		{"S2", "64", false},
		{"S2", "65", true},
		{"S8", "915000", false},
		{"S8", "800000", true},
		{"S20", "3", false},
		{"S20", "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.code+"="+tt.value, func(t *testing.T) {
			err := catalog.Validate(tt.code, tt.value)
			if tt.wantErr {
				if !errors.Is(err, sikparams.ErrInvalidValue) {
					t.Errorf("expected ErrInvalidValue, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCodesAreOrderedNumerically(t *testing.T) {
	codes := sikparams.Default().Codes()
	if len(codes) != 16 {
		t.Fatalf("expected 16 definitions, got %d", len(codes))
	}
	if codes[0] != "S0" || codes[2] != "S2" || codes[10] != "S10" || codes[15] != "S15" {
		t.Errorf("unexpected order: %v", codes)
	}

	mixed := []string{"S10", "FOO", "S2", "S1"}
	sikparams.SortCodes(mixed)
	want := []string{"S1", "S2", "S10", "FOO"}
	if !reflect.DeepEqual(mixed, want) {
		t.Errorf("SortCodes = %v, want %v", mixed, want)
	}
}

func TestLookupIsCaseInsensitive(t *testing.T) {
	def, ok := sikparams.Default().Lookup(" s4 ")
	if !ok {
		t.Fatal("expected S4 definition")
	}
	if def.Name != "TXPOWER" {
		t.Errorf("expected TXPOWER, got %s", def.Name)
	}
}

func TestReadOnly(t *testing.T) {
	catalog := sikparams.Default()
	if !catalog.ReadOnly("s0") {
		t.Error("expected S0 to be read-only")
	}
	for _, code := range []string{"S3", "S15", "S99"} {
		if catalog.ReadOnly(code) {
			t.Errorf("expected %s to be writable", code)
		}
	}
}
