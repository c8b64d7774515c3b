package resolve

import (
	"reflect"
	"testing"
)

func TestExtractLinks(t *testing.T) {
	body := `<html><body>
		<a href="https://www.acme.com/about">About</a>
		<a href="https://boards.greenhouse.io/acme">Jobs</a>
		<a href="https://www.acme.com/about">About again</a>
		<p>Visit http://acme.com/contact or follow
		https://www.linkedin.com/company/acme-inc?trk=nav</p>
	</body></html>`

	got := ExtractLinks(body)
	want := []string{
		"https://www.acme.com/about",
		"https://boards.greenhouse.io/acme",
		"http://acme.com/contact",
		"https://www.linkedin.com/company/acme-inc?trk=nav",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractLinks =\n %v\nwant\n %v", got, want)
	}
}

func TestExtractLinks_StopsAtDelimiters(t *testing.T) {
	body := `href="https://acme.com/a" <https://acme.com/b> 'https://acme.com/c'`

	got := ExtractLinks(body)
	want := []string{"https://acme.com/a", "https://acme.com/b", "https://acme.com/c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractLinks = %v, want %v", got, want)
	}
}

func TestExtractLinks_NoLinks(t *testing.T) {
	if got := ExtractLinks("<html><body>plain page</body></html>"); len(got) != 0 {
		t.Errorf("ExtractLinks = %v, want none", got)
	}
}

func TestNormHost(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"https://www.acme.com/about", "acme.com"},
		{"https://ACME.com/About", "acme.com"},
		{"https://acme.com:8443/x", "acme.com"},
		{"https://www.www.acme.com", "www.acme.com"},
		{"not a url at all ::", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormHost(tt.raw); got != tt.want {
			t.Errorf("NormHost(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		links        []string
		wantHomepage string
		wantLinkedin string
	}{
		{
			name: "first off-platform link wins",
			links: []string{
				"https://boards.greenhouse.io/acme/jobs/1",
				"https://www.acme.com",
				"https://example.org",
			},
			wantHomepage: "https://www.acme.com",
		},
		{
			name: "platform and social links never count as homepage",
			links: []string{
				"https://jobs.lever.co/acme",
				"https://twitter.com/acme",
				"https://www.facebook.com/acme",
				"https://instagram.com/acme",
			},
		},
		{
			name: "company profile link matched by prefix",
			links: []string{
				"https://www.linkedin.com/company/acme-inc?trk=top_nav",
				"https://www.acme.com",
			},
			wantHomepage: "https://www.acme.com",
			wantLinkedin: "https://www.linkedin.com/company/acme-inc?trk=top_nav",
		},
		{
			name: "personal profile is not a company link",
			links: []string{
				"https://www.linkedin.com/in/jane-doe",
			},
		},
		{
			name: "case-insensitive linkedin match",
			links: []string{
				"HTTPS://LinkedIn.com/company/Acme",
			},
			wantLinkedin: "HTTPS://LinkedIn.com/company/Acme",
		},
		{
			name: "empty list",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			homepage, linkedin := Classify(tt.links)
			if homepage != tt.wantHomepage {
				t.Errorf("homepage = %q, want %q", homepage, tt.wantHomepage)
			}
			if linkedin != tt.wantLinkedin {
				t.Errorf("linkedin = %q, want %q", linkedin, tt.wantLinkedin)
			}
		})
	}
}

func TestDomainMatch(t *testing.T) {
	tests := []struct {
		name     string
		resolved string
		posting  string
		want     bool
	}{
		{
			name:     "distinct employer domain",
			resolved: "https://www.acme.com",
			posting:  "https://boards.greenhouse.io/acme/jobs/1",
			want:     true,
		},
		{
			name:     "empty resolved link",
			resolved: "",
			posting:  "https://boards.greenhouse.io/acme/jobs/1",
			want:     false,
		},
		{
			name:     "resolved host is a known platform",
			resolved: "https://greenhouse.io/customers",
			posting:  "https://boards.greenhouse.io/acme/jobs/1",
			want:     false,
		},
		{
			name:     "same host as the posting page",
			resolved: "https://careers.acme.com/about",
			posting:  "https://careers.acme.com/jobs/1",
			want:     false,
		},
		{
			name:     "www difference still matches hosts",
			resolved: "https://www.acme.com",
			posting:  "https://acme.com/jobs/1",
			want:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DomainMatch(tt.resolved, tt.posting); got != tt.want {
				t.Errorf("DomainMatch(%q, %q) = %v, want %v", tt.resolved, tt.posting, got, tt.want)
			}
		})
	}
}
