package bluetooth

import "testing"

func TestNormalizeUUID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"180d", "0000180d-0000-1000-8000-00805f9b34fb"},
		{"FE95", "0000fe95-0000-1000-8000-00805f9b34fb"},
		{"cba20d00", "cba20d00-0000-1000-8000-00805f9b34fb"},
		{"CBA20D00-224D-11E6-9FB8-0002A5D5C51B", "cba20d00-224d-11e6-9fb8-0002a5d5c51b"},
		{"0000fe95-0000-1000-8000-00805f9b34fb", "0000fe95-0000-1000-8000-00805f9b34fb"},
	}

	for _, tt := range tests {
		got, err := NormalizeUUID(tt.in)
		if err != nil {
			t.Fatalf("%s: expected nil error but got %s instead", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("%s: expected %s but got %s instead", tt.in, tt.want, got)
		}
	}

	if _, err := NormalizeUUID("not-a-uuid"); err == nil {
		t.Fatalf("expected error for invalid uuid")
	}
}

func TestMustUUID(t *testing.T) {
	if got := MustUUID("180a"); got != "0000180a-0000-1000-8000-00805f9b34fb" {
		t.Fatalf("expected expanded uuid but got %s instead", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid uuid")
		}
	}()
	MustUUID("bogus")
}
