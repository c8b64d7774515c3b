package dedup

import "testing"

func TestFingerprint(t *testing.T) {
	id := Fingerprint("https://example.com/jobs/1", "Data Analyst")

	if len(id) != 12 {
		t.Fatalf("len(Fingerprint) = %d, want 12", len(id))
	}
	for _, c := range id {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Fatalf("Fingerprint %q contains non-hex character %q", id, c)
		}
	}

	if again := Fingerprint("https://example.com/jobs/1", "Data Analyst"); again != id {
		t.Errorf("Fingerprint not stable: %q vs %q", id, again)
	}
	if other := Fingerprint("https://example.com/jobs/2", "Data Analyst"); other == id {
		t.Error("Fingerprint identical for different URLs")
	}
	if other := Fingerprint("https://example.com/jobs/1", "Risk Analyst"); other == id {
		t.Error("Fingerprint identical for different titles")
	}
}

func TestDeduper_Add(t *testing.T) {
	d := NewDeduper()

	if !d.Add("abc123") {
		t.Error("Add: first occurrence rejected")
	}
	if d.Add("abc123") {
		t.Error("Add: duplicate accepted")
	}
	if !d.Add("def456") {
		t.Error("Add: distinct fingerprint rejected")
	}
}
