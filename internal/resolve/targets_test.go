package resolve

import (
	"strings"
	"testing"
)

func TestReadTargets(t *testing.T) {
	csvData := `id,source,company,title,url,location,fitscore
a1b2c3d4e5f6,greenhouse,acme,Data Analyst,https://boards.greenhouse.io/acme/jobs/1,Remote,5
short,row
f6e5d4c3b2a1,lever,initech,Risk Analyst,https://jobs.lever.co/initech/2,New York,4,extra-col
,greenhouse,acme,Missing ID,https://boards.greenhouse.io/acme/jobs/3,Remote,3
0123456789ab,greenhouse,acme,Missing URL,,Remote,3
ba9876543210,lever,hooli,Credit Analyst,https://jobs.lever.co/hooli/4,Denver,4
`

	targets, err := ReadTargets(strings.NewReader(csvData), 50)
	if err != nil {
		t.Fatalf("ReadTargets failed: %v", err)
	}

	if len(targets) != 3 {
		t.Fatalf("expected 3 targets, got %d: %+v", len(targets), targets)
	}
	if targets[0].ID != "a1b2c3d4e5f6" || targets[0].URL != "https://boards.greenhouse.io/acme/jobs/1" {
		t.Errorf("unexpected first target: %+v", targets[0])
	}
	if targets[1].ID != "f6e5d4c3b2a1" || targets[1].Company != "initech" {
		t.Errorf("unexpected second target: %+v", targets[1])
	}
	if targets[2].Title != "Credit Analyst" || targets[2].FitScore != "4" {
		t.Errorf("unexpected third target: %+v", targets[2])
	}
}

func TestReadTargets_CapCountsScannedRows(t *testing.T) {
	csvData := `id,source,company,title,url,location,fitscore
a1,greenhouse,acme,Data Analyst,https://x/1,Remote,5
a2,greenhouse,acme,Data Analyst II,https://x/2,Remote,5
a3,greenhouse,acme,Data Analyst III,https://x/3,Remote,5
`

	targets, err := ReadTargets(strings.NewReader(csvData), 2)
	if err != nil {
		t.Fatalf("ReadTargets failed: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(targets))
	}
	if targets[0].ID != "a1" || targets[1].ID != "a2" {
		t.Errorf("unexpected targets: %+v", targets)
	}
}

func TestReadTargets_SkippedRowsStillCountTowardCap(t *testing.T) {
	csvData := `id,source,company,title,url,location,fitscore
bad,row
a2,greenhouse,acme,Data Analyst,https://x/2,Remote,5
a3,greenhouse,acme,Data Analyst II,https://x/3,Remote,5
`

	targets, err := ReadTargets(strings.NewReader(csvData), 2)
	if err != nil {
		t.Fatalf("ReadTargets failed: %v", err)
	}
	if len(targets) != 1 || targets[0].ID != "a2" {
		t.Errorf("expected only a2, got %+v", targets)
	}
}

func TestReadTargets_EmptyInput(t *testing.T) {
	targets, err := ReadTargets(strings.NewReader(""), 50)
	if err != nil {
		t.Fatalf("ReadTargets failed: %v", err)
	}
	if len(targets) != 0 {
		t.Errorf("expected no targets, got %+v", targets)
	}
}

func TestReadTargets_HeaderOnly(t *testing.T) {
	targets, err := ReadTargets(strings.NewReader("id,source,company,title,url,location,fitscore\n"), 50)
	if err != nil {
		t.Fatalf("ReadTargets failed: %v", err)
	}
	if len(targets) != 0 {
		t.Errorf("expected no targets, got %+v", targets)
	}
}
