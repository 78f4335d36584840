package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/javiermolinar/abastecimentos/internal/config"
)

func TestPrintConfig(t *testing.T) {
	cfg := config.Default()
	cfg.API.Token = "segredo"
	cfg.Export.Schedule = ""
	cfg.UI.Theme = "frappe"

	var buf bytes.Buffer
	printConfig(&buf, cfg)
	out := buf.String()

	if strings.Contains(out, "segredo") {
		t.Error("token must not be printed")
	}
	for _, want := range []string{
		"token        = (set)",
		"schedule     = (disabled)",
		"theme        = frappe (unknown, using mocha)",
		"[storage]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
