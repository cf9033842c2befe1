package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/hamjambo/hare-report-mailer/pkg/config"
	"github.com/hamjambo/hare-report-mailer/pkg/health"
	"github.com/hamjambo/hare-report-mailer/pkg/report"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Section names one rendered part of a report.
type Section string

const (
	SectionMemory  Section = "memory"
	SectionStorage Section = "storage"
	SectionSystem  Section = "system"
	SectionBattery Section = "battery"
)

// Fragment is the rendered HTML of one section.
type Fragment struct {
	Section Section
	Status  health.Status
	HTML    template.HTML
}

// Document is a fully rendered report: the shared body and both framed copies.
type Document struct {
	Fragments []Fragment
	Body      template.HTML
	Admin     string
	User      string
}

// Statuses returns the classification of every rendered section.
func (d *Document) Statuses() map[Section]health.Status {
	out := make(map[Section]health.Status, len(d.Fragments))
	for _, f := range d.Fragments {
		out[f.Section] = f.Status
	}

	return out
}

// Renderer turns a validated report into HTML mail bodies. It is safe for concurrent use.
type Renderer struct {
	templates *template.Template
	profile   *config.Profile
}

func NewRenderer(profile *config.Profile) (*Renderer, error) {
	tmpl, err := template.New("report").Funcs(sprig.HtmlFuncMap()).ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse report templates: %w", err)
	}

	return &Renderer{templates: tmpl, profile: profile}, nil
}

type memoryView struct {
	Memory *report.Memory
	Status health.Status
}

type storageView struct {
	Storage *report.Storage
	Status  health.Status
}

type systemView struct {
	System *report.System
	Status health.Status
}

type batteryView struct {
	Battery  *report.Battery
	Status   health.Status
	Critical bool
}

type sectionData struct {
	section Section
	status  health.Status
	data    any
}

type bodyView struct {
	Message      string
	Manufacturer string
	Model        string
	Fragments    []Fragment
	FooterImage  string
}

type adminView struct {
	HeaderImage string
	Name        string
	Phone       string
	Email       string
	Body        template.HTML
}

type userView struct {
	HeaderImage string
	Greeting    string
	Name        string
	Body        template.HTML
}

// Fragments renders memory, storage and system, plus battery when the machine has one.
// The report must have passed validation.
func (r *Renderer) Fragments(rep *report.Report) ([]Fragment, error) {
	memoryStatus := health.Classify(rep.Memory.CurrentGB, rep.Memory.MaxGB)
	storageStatus := health.Classify(rep.Storage.AvailableGB, rep.Storage.TotalGB)
	systemStatus := health.ClassifyReported(rep.System.Status)

	sections := []sectionData{
		{SectionMemory, memoryStatus, memoryView{Memory: rep.Memory, Status: memoryStatus}},
		{SectionStorage, storageStatus, storageView{Storage: rep.Storage, Status: storageStatus}},
		{SectionSystem, systemStatus, systemView{System: rep.System, Status: systemStatus}},
	}

	if rep.Battery.HasBattery {
		batteryStatus := health.Classify(rep.Battery.MaxCapacity, rep.Battery.DesignedCapacity)
		sections = append(sections, sectionData{SectionBattery, batteryStatus, batteryView{
			Battery:  rep.Battery,
			Status:   batteryStatus,
			Critical: batteryStatus.Tier == health.TierLow,
		}})
	}

	fragments := make([]Fragment, 0, len(sections))

	for _, s := range sections {
		html, err := r.execute(string(s.section), s.data)
		if err != nil {
			return nil, err
		}

		fragments = append(fragments, Fragment{Section: s.section, Status: s.status, HTML: html})
	}

	return fragments, nil
}

// Render produces the shared report body and the admin and user copies framing it.
func (r *Renderer) Render(rep *report.Report) (*Document, error) {
	fragments, err := r.Fragments(rep)
	if err != nil {
		return nil, err
	}

	body, err := r.execute("body", bodyView{
		Message:      rep.Message,
		Manufacturer: rep.System.Manufacturer,
		Model:        rep.System.Model,
		Fragments:    fragments,
		FooterImage:  r.profile.Images.Footer,
	})
	if err != nil {
		return nil, err
	}

	admin, err := r.execute("admin", adminView{
		HeaderImage: r.profile.Images.Header,
		Name:        rep.Name,
		Phone:       rep.Phone.String(),
		Email:       rep.Email,
		Body:        body,
	})
	if err != nil {
		return nil, err
	}

	user, err := r.execute("user", userView{
		HeaderImage: r.profile.Images.Header,
		Greeting:    r.profile.Greeting,
		Name:        rep.Name,
		Body:        body,
	})
	if err != nil {
		return nil, err
	}

	return &Document{
		Fragments: fragments,
		Body:      body,
		Admin:     string(admin),
		User:      string(user),
	}, nil
}

// execute runs a named template. The output comes from html/template and is safe to embed.
func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}

	return template.HTML(buf.String()), nil //nolint:gosec // output of html/template
}
