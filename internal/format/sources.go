package format

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SourceRef is the descriptor handed to platform renderers for one cited
// document.
type SourceRef struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
}

// URLMap resolves source filenames to public document URLs.
type URLMap struct {
	urls       map[string]string
	defaultURL string
}

func NewURLMap(urls map[string]string, defaultURL string) *URLMap {
	return &URLMap{urls: urls, defaultURL: defaultURL}
}

const fallbackURL = "https://www.africa.engineering.cmu.edu/"

// DefaultURLMap covers the documents currently in the knowledge base.
func DefaultURLMap() *URLMap {
	return NewURLMap(map[string]string{
		"staff-handbook-africa.pdf":             "https://www.cmu.edu/hr/assets/hr/staff-handbook-africa.pdf",
		"fwa-guidelines.pdf":                    "https://www.cmu.edu/hr/assets/rwanda/fwa-guidelines.pdf",
		"offboarding-checklist-employee.pdf":    "https://www.cmu.edu/hr/assets/hr/restrict/offboarding-checklist-employee.pdf",
		"onboarding-checklist-cmu-africa.pdf":   "https://www.cmu.edu/hr/service-center/assets/onboarding-checklist-cmu-africa.pdf",
		"hiring-process-2024.pdf":               "https://www.africa.engineering.cmu.edu/_files/documents/faculty-staff/hiring-process-2024.pdf",
		"travel-guidelines-dec-2024.pdf":        "https://www.africa.engineering.cmu.edu/_files/documents/faculty-staff/travel-guidelines-dec-2024.pdf",
		"2025-payroll-rwanda.pdf":               "https://www.cmu.edu/hr/service-center/payroll/calendars/2025-payroll-rwanda.pdf",
		"onboarding.pdf":                        "https://www.cmu.edu/my-workday-toolkit/self-service/system-guides/onboarding.pdf",
		"update-contact-info.pdf":               "https://www.cmu.edu/my-workday-toolkit/self-service/system-guides/update-contact-info.pdf",
		"change-government-id.pdf":              "https://www.cmu.edu/my-workday-toolkit/self-service/system-guides/change-government-id.pdf",
		"change-work-space.pdf":                 "https://www.cmu.edu/my-workday-toolkit/self-service/system-guides/change-work-space.pdf",
		"submit-resignation.pdf":                "https://www.cmu.edu/my-workday-toolkit/self-service/system-guides/submit-resignation.pdf",
		"career-profile.pdf":                    "https://www.cmu.edu/my-workday-toolkit/self-service/system-guides/career-profile.pdf",
		"faq.pdf":                               "https://www.cmu.edu/hr/assets/hr/faq.pdf",
		"quick-guide-mobile-installation-instructions.pdf":            "https://www.cmu.edu/my-workday-toolkit/quick-guides/restricted/quick-guide-mobile-installation-instructions.pdf",
		"quick-guide-self-identification-instructions-disability.pdf": "https://www.cmu.edu/my-workday-toolkit/quick-guides/restricted/quick-guide-self-identification-instructions-disability.pdf",
		"quick-guide-change-legal-name.pdf":                           "https://www.cmu.edu/my-workday-toolkit/quick-guides/restricted/quick-guide-change-legal-name.pdf",
		"quick-guide-change-preferred-name.pdf":                       "https://www.cmu.edu/my-workday-toolkit/quick-guides/restricted/quick-guide-change-preferred-name.pdf",
		"quick-guide-payment-elections.pdf":                           "https://www.cmu.edu/my-workday-toolkit/quick-guides/restricted/quick-guide-payment-elections.pdf",
		"quick-guide-review-pay-slip.pdf":                             "https://www.cmu.edu/my-workday-toolkit/quick-guides/restricted/quick-guide-review-pay-slip.pdf",
		"quick-guide-time-tracking-employees.pdf":                     "https://www.cmu.edu/my-workday-toolkit/quick-guides/restricted/quick-guide-time-tracking-employees.pdf",
		"quick-guide-dependent-tuition-benefits.pdf":                  "https://www.cmu.edu/my-workday-toolkit/quick-guides/restricted/quick-guide-dependent-tuition-benefits.pdf",
		"quick-guide-employee-tuition-benefits.pdf":                   "https://www.cmu.edu/my-workday-toolkit/quick-guides/restricted/quick-guide-employee-tuition-benefits.pdf",
		"quick-guide-designate-beneficiary.pdf":                       "https://www.cmu.edu/my-workday-toolkit/quick-guides/restricted/quick-guide-designate-beneficiary.pdf",
		"quick-guide-change-benefits.pdf":                             "https://www.cmu.edu/my-workday-toolkit/quick-guides/restricted/quick-guide-change-benefits.pdf",
		"Disability Insurance - Human Resources - Carnegie Mellon University.html": "https://www.cmu.edu/hr/benefits/disability-insurance.html",
		"Employee HR Resources - Human Resources - Carnegie Mellon University.html": "https://www.cmu.edu/hr",
		"Student Workers - Human Resources - Carnegie Mellon University.html":       "https://www.cmu.edu/hr/benefits/student-workers.html",
		"Africa - Human Resources - Carnegie Mellon University.html":                "https://www.cmu.edu/hr/benefits/international/africa.html",
		"faculty_handbook.html":                 "https://www.cmu.edu/faculty-senate/faculty-handbook",
		"benefits.html":                         "https://www.cmu.edu/hr/benefits",
		"complete_people_with_profiles.csv":     fallbackURL,
		"sample_staff_data.csv":                 fallbackURL,
		"CMU_Africa_Documents.csv":              fallbackURL,
		"cmu_africa_complete_profiles.txt":      fallbackURL,
	}, fallbackURL)
}

// Resolve returns the public URL for a source filename. Unmapped files get a
// default by extension, then the map's fallback.
func (m *URLMap) Resolve(filename string) string {
	name := baseName(filename)
	if url, ok := m.urls[name]; ok {
		return url
	}
	switch {
	case strings.HasSuffix(name, ".pdf"):
		return "https://www.cmu.edu/hr/assets"
	case strings.HasSuffix(name, ".html"):
		return "https://www.cmu.edu/hr"
	default:
		return m.defaultURL
	}
}

// BuildSourceRefs is the canonical attach-sources step: it strips paths,
// removes duplicate filenames while preserving first-seen order, and
// resolves each survivor to a URL.
func BuildSourceRefs(filenames []string, urls *URLMap) []SourceRef {
	seen := make(map[string]struct{}, len(filenames))
	refs := make([]SourceRef, 0, len(filenames))
	for _, raw := range filenames {
		name := baseName(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		refs = append(refs, SourceRef{Filename: name, URL: urls.Resolve(name)})
	}
	return refs
}

func baseName(path string) string {
	name := strings.TrimSpace(path)
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return name
}

var titleCaser = cases.Title(language.English)

const htmlTitleSuffix = " - Human Resources - Carnegie Mellon University"

// displayName turns a source filename into a reader-facing document name.
func displayName(filename string) string {
	name := baseName(filename)
	lower := strings.ToLower(name)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	switch {
	case strings.HasSuffix(lower, ".html"):
		return titleWords(strings.TrimSuffix(stem, htmlTitleSuffix))
	case strings.HasSuffix(lower, ".csv"):
		if strings.Contains(lower, "cmu_africa") || strings.Contains(lower, "africa_documents") {
			return "CMU-Africa Website"
		}
		return titleWords(stem)
	case strings.HasSuffix(lower, ".pdf"), strings.HasSuffix(lower, ".txt"):
		return titleWords(stem)
	default:
		return titleWords(name)
	}
}

func titleWords(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	return titleCaser.String(s)
}
