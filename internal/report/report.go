// Package report renders run progress and the closing operator summary.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/RodolfoBonis/spooliq-iamops/domain/model"
	"github.com/RodolfoBonis/spooliq-iamops/usecase/provision"
)

// Printer writes human-readable run output. It is safe to pass as the
// pipeline's OnResult observer.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer { return &Printer{w: w} }

// StepResult prints one step outcome line. A failed step renders its error
// detail; this is the terminal line of a failed run.
func (p *Printer) StepResult(res provision.StepResult) {
	if res.Status == model.StatusFailed {
		fmt.Fprintf(p.w, "FAILED %s: %s\n", res.Name, res.Detail)
		return
	}
	line := fmt.Sprintf("%-24s %s", res.Name, res.Status)
	if res.Resource != nil && res.Resource.RemoteID != "" {
		line += " id=" + res.Resource.RemoteID
	}
	if res.Detail != "" {
		line += " " + res.Detail
	}
	fmt.Fprintln(p.w, line)
}

// SummaryInput carries everything the closing summary renders.
type SummaryInput struct {
	Realm       string
	ClientID    string
	UserEmail   string
	TenantID    string
	CompanyName string
	ClaimName   string
	RunID       string
}

// Summary prints the configuration recap and the follow-up steps the
// operator performs outside this tool: inserting the company row and
// verifying a login token carries the tenant claim.
func (p *Printer) Summary(in SummaryInput) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(p.w, rule)
	fmt.Fprintln(p.w, "setup completed")
	fmt.Fprintln(p.w, rule)
	fmt.Fprintf(p.w, "realm=%s\n", in.Realm)
	fmt.Fprintf(p.w, "client=%s\n", in.ClientID)
	fmt.Fprintf(p.w, "user=%s\n", in.UserEmail)
	fmt.Fprintf(p.w, "tenant=%s\n", in.TenantID)
	if in.RunID != "" {
		fmt.Fprintf(p.w, "run=%s\n", in.RunID)
	}
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, "next steps:")
	fmt.Fprintln(p.w, "  1. create the company record:")
	fmt.Fprintf(p.w, "     INSERT INTO companies (id, organization_id, name, email)\n")
	fmt.Fprintf(p.w, "     VALUES (uuid_generate_v4(), '%s', '%s', '%s');\n", in.TenantID, in.CompanyName, in.UserEmail)
	fmt.Fprintln(p.w, "  2. test login via the API:")
	fmt.Fprintln(p.w, "     curl -X POST http://localhost:8000/v1/login \\")
	fmt.Fprintln(p.w, "       -H 'Content-Type: application/json' \\")
	fmt.Fprintf(p.w, "       -d '{\"email\":\"%s\",\"password\":\"YOUR_PASSWORD\"}'\n", in.UserEmail)
	fmt.Fprintf(p.w, "  3. verify the JWT carries the %s claim\n", in.ClaimName)
}
