package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS
	PlatformWorkday Platform = "workday"
	// PlatformAshby is the Ashby ATS
	PlatformAshby Platform = "ashby"
	// PlatformLinkedIn is a LinkedIn job view
	PlatformLinkedIn Platform = "linkedin"
	// PlatformUnknown is an unrecognized board
	PlatformUnknown Platform = "unknown"
)

// hostPatterns maps host substrings to platforms, checked in order.
var hostPatterns = []struct {
	fragment string
	platform Platform
}{
	{"greenhouse.io", PlatformGreenhouse},
	{"lever.co", PlatformLever},
	{"myworkdayjobs.com", PlatformWorkday},
	{"workday.com", PlatformWorkday},
	{"ashbyhq.com", PlatformAshby},
	{"linkedin.com", PlatformLinkedIn},
}

// DetectPlatform identifies the job board from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Host)
	for _, p := range hostPatterns {
		if strings.Contains(host, p.fragment) {
			return p.platform
		}
	}
	return PlatformUnknown
}

// RendersClientSide reports boards whose postings need a browser to render.
func (p Platform) RendersClientSide() bool {
	return p == PlatformWorkday || p == PlatformAshby
}

// PlatformContentSelectors returns content selectors for a board.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"}
	case PlatformLever:
		return []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"}
	case PlatformWorkday:
		return []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"}
	case PlatformAshby:
		return []string{"._descriptionText_oj0x8_198", "[class*='descriptionText']", "main"}
	case PlatformLinkedIn:
		return []string{".show-more-less-html__markup", ".description__text", ".jobs-description__content"}
	default:
		return JobPostingSelectors()
	}
}

// PlatformNoiseSelectors returns elements to strip for a board: application
// forms, EEO boilerplate and share widgets.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		"form",
		"#application-form",
		".application-form",
		".apply-button-container",
		".voluntary-disclosure",
		".eeo-statement",
		".eeo-section",
		".legal-disclosure",
		".social-share",
		".share-buttons",
		".cookie-consent",
		".gdpr-notice",
	}

	switch platform {
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", ".voluntary-self-id", "#usa_self_id_section")
	case PlatformLever:
		return append(common, ".apply-section", ".posting-apply")
	case PlatformWorkday:
		return append(common, "[data-automation-id='applyButton']", ".WDAF")
	case PlatformLinkedIn:
		return append(common, ".top-card-layout__cta-container", ".similar-jobs")
	default:
		return common
	}
}
