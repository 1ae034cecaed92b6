package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/internal/domain"
)

func TestTemplateRenderer_Render(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	tests := []struct {
		name        string
		template    string
		data        any
		wantSubject string
		wantInBody  []string
	}{
		{
			name:        "welcome",
			template:    "welcome",
			data:        &domain.WelcomeEmailData{Email: "rohan@buildforge.io", Name: "Rohan"},
			wantSubject: "Welcome to Campus Events, Rohan",
			wantInBody:  []string{"rohan@buildforge.io"},
		},
		{
			name:        "request received",
			template:    "organizer_request_received",
			data:        &domain.OrganizerRequestEmailData{Email: "x@y.edu", OrganizationName: "Tech Club", RequestID: "req-1"},
			wantSubject: "We received your organizer request for Tech Club",
			wantInBody:  []string{"Tech Club", "req-1"},
		},
		{
			name:        "approved",
			template:    "organizer_decision",
			data:        &domain.OrganizerRequestEmailData{OrganizationName: "Tech Club", Status: domain.RequestApproved},
			wantSubject: "Your organizer account is approved",
			wantInBody:  []string{"approved", "Tech Club"},
		},
		{
			name:        "rejected",
			template:    "organizer_decision",
			data:        &domain.OrganizerRequestEmailData{OrganizationName: "Tech Club", RequestID: "req-2", Status: domain.RequestRejected},
			wantSubject: "Update on your organizer request",
			wantInBody:  []string{"not approved", "req-2"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, html, text, err := r.Render(tt.template, tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSubject, subject)
			for _, want := range tt.wantInBody {
				assert.Contains(t, html, want)
				assert.Contains(t, text, want)
			}
		})
	}
}

func TestTemplateRenderer_EscapesHTML(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	_, html, text, err := r.Render("welcome", &domain.WelcomeEmailData{Name: "<b>Eve</b>"})
	require.NoError(t, err)
	assert.NotContains(t, html, "<b>Eve</b>")
	assert.Contains(t, html, "&lt;b&gt;Eve&lt;/b&gt;")
	assert.Contains(t, text, "<b>Eve</b>")
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	r, err := NewTemplateRenderer()
	require.NoError(t, err)

	_, _, _, err = r.Render("missing", nil)
	assert.Error(t, err)
}
