package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/company/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/company/job-id", PlatformLever},
		{"https://company.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/1234", PlatformAshby},
		{"https://www.linkedin.com/jobs/view/123456", PlatformLinkedIn},
		{"https://careers.example.com/jobs/1", PlatformUnknown},
		{"::not a url", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestPlatform_RendersClientSide(t *testing.T) {
	assert.True(t, PlatformWorkday.RendersClientSide())
	assert.True(t, PlatformAshby.RendersClientSide())
	assert.False(t, PlatformGreenhouse.RendersClientSide())
	assert.False(t, PlatformUnknown.RendersClientSide())
}

func TestPlatformContentSelectors(t *testing.T) {
	assert.Contains(t, PlatformContentSelectors(PlatformGreenhouse), ".job__description")
	assert.Contains(t, PlatformContentSelectors(PlatformLever), ".posting-description")
	assert.Equal(t, JobPostingSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestPlatformNoiseSelectors(t *testing.T) {
	common := PlatformNoiseSelectors(PlatformUnknown)
	assert.Contains(t, common, "form")
	assert.Contains(t, common, ".eeo-statement")

	greenhouse := PlatformNoiseSelectors(PlatformGreenhouse)
	assert.Contains(t, greenhouse, "#usa_self_id_section")
	assert.Greater(t, len(greenhouse), len(common))
}
