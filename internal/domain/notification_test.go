package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"teamboard/internal/model"
)

func TestValidateTemplate(t *testing.T) {
	cases := []struct {
		name    string
		tmpl    model.Template
		wantErr string
	}{
		{name: "minimal", tmpl: model.Template{Title: "Deploy done"}},
		{name: "full", tmpl: model.Template{Title: "t", Body: "b", URL: "https://example.com/x", Icon: "http://cdn.example.com/i.png"}},
		{name: "blank title", tmpl: model.Template{Title: "   "}, wantErr: "title is required"},
		{name: "long title", tmpl: model.Template{Title: strings.Repeat("é", 500)}},
		{name: "long body", tmpl: model.Template{Title: "t", Body: strings.Repeat("a", 10000)}},
		{name: "relative url", tmpl: model.Template{Title: "t", URL: "/inbox"}},
		{name: "bare path", tmpl: model.Template{Title: "t", URL: "reports?date=2026-03-01"}},
		{name: "protocol relative icon", tmpl: model.Template{Title: "t", Icon: "//cdn.example.com/i.png"}},
		{name: "script url", tmpl: model.Template{Title: "t", URL: "javascript:alert(1)"}, wantErr: "url must be a relative or http(s) link"},
		{name: "bad image scheme", tmpl: model.Template{Title: "t", Image: "ftp://example.com/a.png"}, wantErr: "image must be a relative or http(s) link"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTemplate(tc.tmpl)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestOutcome(t *testing.T) {
	require.Equal(t, "partial_success", OutcomePartialSuccess.String())
	require.Equal(t, "unknown", Outcome(99).String())

	for _, o := range []Outcome{OutcomeIdle, OutcomeResolving, OutcomeResolved, OutcomeWriting} {
		require.False(t, o.Terminal(), o.String())
	}
	for _, o := range []Outcome{OutcomeResolutionFailed, OutcomeAllFailed, OutcomePartialSuccess, OutcomeFullSuccess, OutcomeRejected} {
		require.True(t, o.Terminal(), o.String())
	}
}
