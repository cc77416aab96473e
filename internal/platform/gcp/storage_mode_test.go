package gcp

import (
	"errors"
	"testing"
)

func TestResolveObjectStorageConfig(t *testing.T) {
	cases := []struct {
		mode, host string
		want       ObjectStorageMode
		code       ObjectStorageConfigErrorCode
	}{
		{"", "", ObjectStorageModeGCS, ""},
		{"gcs", "http://fake-gcs:4443", ObjectStorageModeGCS, ""},
		{"", "http://fake-gcs:4443/", ObjectStorageModeGCSEmulator, ""},
		{"GCS_EMULATOR", "http://fake-gcs:4443", ObjectStorageModeGCSEmulator, ""},
		{"gcs_emulator", "", "", ObjectStorageConfigErrorMissingEmulatorHost},
		{"gcs_emulator", "fake-gcs", "", ObjectStorageConfigErrorInvalidEmulatorHost},
		{"s3", "", "", ObjectStorageConfigErrorInvalidMode},
	}
	for _, tc := range cases {
		cfg, err := ResolveObjectStorageConfig(tc.mode, tc.host)
		if tc.code != "" {
			var cfgErr *ObjectStorageConfigError
			if !errors.As(err, &cfgErr) || cfgErr.Code != tc.code {
				t.Fatalf("mode=%q host=%q: err=%v want code %s", tc.mode, tc.host, err, tc.code)
			}
			continue
		}
		if err != nil {
			t.Fatalf("mode=%q host=%q: %v", tc.mode, tc.host, err)
		}
		if cfg.Mode != tc.want {
			t.Fatalf("mode=%q host=%q: got %q want %q", tc.mode, tc.host, cfg.Mode, tc.want)
		}
	}
}

func TestEmulatorHostTrimmed(t *testing.T) {
	cfg, err := ResolveObjectStorageConfig("", "http://fake-gcs:4443/")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if cfg.EmulatorHost != "http://fake-gcs:4443" {
		t.Fatalf("host=%q", cfg.EmulatorHost)
	}
}

func TestContentTypeForKey(t *testing.T) {
	for key, want := range map[string]string{
		"knowledge/strength.yaml": "application/yaml",
		"raw/book.PDF":            "application/pdf",
		"notes.txt":               "",
	} {
		if got := contentTypeForKey(key); got != want {
			t.Fatalf("contentTypeForKey(%q)=%q want %q", key, got, want)
		}
	}
}
