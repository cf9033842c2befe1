package render

import (
	"strings"
	"testing"

	"github.com/onsi/gomega"
	"github.com/stretchr/testify/require"

	"github.com/hamjambo/hare-report-mailer/pkg/config"
	"github.com/hamjambo/hare-report-mailer/pkg/health"
	haretesting "github.com/hamjambo/hare-report-mailer/pkg/testing"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	r, err := NewRenderer(config.DefaultProfile())
	require.NoError(t, err)

	return r
}

func fragmentFor(fragments []Fragment, section Section) (Fragment, bool) {
	for _, f := range fragments {
		if f.Section == section {
			return f, true
		}
	}

	return Fragment{}, false
}

func TestRenderer_Fragments(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	// given
	r := newTestRenderer(t)
	rep := haretesting.NewReport()

	// when
	fragments, err := r.Fragments(rep)

	// then
	g.Expect(err).Should(gomega.BeNil())
	g.Expect(fragments).To(gomega.HaveLen(4))

	var sections []Section
	for _, f := range fragments {
		sections = append(sections, f.Section)
	}

	g.Expect(sections).To(gomega.Equal([]Section{SectionMemory, SectionStorage, SectionSystem, SectionBattery}))
}

func TestRenderer_Fragments_WithoutBattery(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	// given
	r := newTestRenderer(t)
	rep := haretesting.NewReport(haretesting.WithoutBattery)

	// when
	doc, err := r.Render(rep)

	// then
	g.Expect(err).Should(gomega.BeNil())
	g.Expect(doc.Fragments).To(gomega.HaveLen(3))
	_, found := fragmentFor(doc.Fragments, SectionBattery)
	g.Expect(found).To(gomega.BeFalse())
	g.Expect(string(doc.Body)).NotTo(gomega.ContainSubstring("BATTERY"))
	g.Expect(doc.Statuses()).NotTo(gomega.HaveKey(SectionBattery))
}

func TestRenderer_Fragments_Statuses(t *testing.T) {
	testCases := []struct {
		name      string
		opts      []haretesting.NewReportOpts
		section   Section
		wantPct   int
		wantTier  health.Tier
		wantColor string
	}{
		{
			name:      "memory below half is LOW",
			opts:      []haretesting.NewReportOpts{haretesting.WithMemory(4, 16)},
			section:   SectionMemory,
			wantPct:   25,
			wantTier:  health.TierLow,
			wantColor: "darkred",
		},
		{
			name:      "memory at half is AVERAGE",
			opts:      []haretesting.NewReportOpts{haretesting.WithMemory(8, 16)},
			section:   SectionMemory,
			wantPct:   50,
			wantTier:  health.TierAverage,
			wantColor: "darkgoldenrod",
		},
		{
			name:      "storage uses available space over total",
			opts:      []haretesting.NewReportOpts{haretesting.WithStorage(149, 200)},
			section:   SectionStorage,
			wantPct:   74,
			wantTier:  health.TierAverage,
			wantColor: "darkgoldenrod",
		},
		{
			name:      "system status is classified as reported",
			opts:      []haretesting.NewReportOpts{haretesting.WithSystemStatus(80.9)},
			section:   SectionSystem,
			wantPct:   80,
			wantTier:  health.TierHigh,
			wantColor: "darkgreen",
		},
		{
			name:      "battery uses max capacity over designed capacity",
			opts:      []haretesting.NewReportOpts{haretesting.WithBattery(30000, 75000)},
			section:   SectionBattery,
			wantPct:   40,
			wantTier:  health.TierLow,
			wantColor: "darkred",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := gomega.NewGomegaWithT(t)
			r := newTestRenderer(t)

			fragments, err := r.Fragments(haretesting.NewReport(tc.opts...))
			g.Expect(err).Should(gomega.BeNil())

			f, found := fragmentFor(fragments, tc.section)
			g.Expect(found).To(gomega.BeTrue())
			g.Expect(f.Status.Percentage).To(gomega.Equal(tc.wantPct))
			g.Expect(f.Status.Tier).To(gomega.Equal(tc.wantTier))

			html := string(f.HTML)
			g.Expect(html).To(gomega.ContainSubstring("color: " + tc.wantColor))
			g.Expect(html).To(gomega.ContainSubstring(string(tc.wantTier)))
		})
	}
}

func TestRenderer_MemoryStatusMatchesTier(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	// given: every other section is HIGH so only memory can contribute a LOW badge
	r := newTestRenderer(t)
	rep := haretesting.NewReport(
		haretesting.WithMemory(2, 16),
		haretesting.WithStorage(90, 100),
		haretesting.WithSystemStatus(90),
		haretesting.WithBattery(90, 100),
	)

	// when
	fragments, err := r.Fragments(rep)

	// then
	g.Expect(err).Should(gomega.BeNil())
	memory, _ := fragmentFor(fragments, SectionMemory)
	g.Expect(string(memory.HTML)).To(gomega.ContainSubstring("12%"))
	g.Expect(string(memory.HTML)).To(gomega.ContainSubstring("color: darkred"))
	g.Expect(string(memory.HTML)).To(gomega.ContainSubstring("LOW"))
	g.Expect(string(memory.HTML)).NotTo(gomega.ContainSubstring("darkgreen; font-weight"))
}

func TestRenderer_BatteryCriticalNote(t *testing.T) {
	const note = "Critical condition !!! Battery need to be replaced"

	g := gomega.NewGomegaWithT(t)
	r := newTestRenderer(t)

	low, err := r.Fragments(haretesting.NewReport(haretesting.WithBattery(20, 100)))
	g.Expect(err).Should(gomega.BeNil())
	battery, _ := fragmentFor(low, SectionBattery)
	g.Expect(string(battery.HTML)).To(gomega.ContainSubstring(note))

	high, err := r.Fragments(haretesting.NewReport(haretesting.WithBattery(95, 100)))
	g.Expect(err).Should(gomega.BeNil())
	battery, _ = fragmentFor(high, SectionBattery)
	g.Expect(string(battery.HTML)).NotTo(gomega.ContainSubstring(note))
	g.Expect(string(battery.HTML)).NotTo(gomega.ContainSubstring("false"))
}

func TestRenderer_Render(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	// given
	profile := config.DefaultProfile()
	r, err := NewRenderer(profile)
	require.NoError(t, err)
	rep := haretesting.NewReport()

	// when
	doc, err := r.Render(rep)

	// then
	g.Expect(err).Should(gomega.BeNil())

	body := string(doc.Body)
	g.Expect(body).To(gomega.ContainSubstring("Dell Inc. Latitude 7490"))
	g.Expect(body).To(gomega.ContainSubstring("Laptop is slow when opening several tabs"))
	g.Expect(body).To(gomega.ContainSubstring(profile.Images.Footer))
	g.Expect(body).To(gomega.ContainSubstring("Slot 1"))
	g.Expect(body).To(gomega.ContainSubstring("Slot 2"))
	g.Expect(body).To(gomega.ContainSubstring("Disk1"))
	g.Expect(body).To(gomega.ContainSubstring("SSD (if possible)"))

	// both copies carry the same report body
	g.Expect(doc.Admin).To(gomega.ContainSubstring(body))
	g.Expect(doc.User).To(gomega.ContainSubstring(body))

	g.Expect(doc.Admin).To(gomega.ContainSubstring("Juma"))
	g.Expect(doc.Admin).To(gomega.ContainSubstring("0712345678"))
	g.Expect(doc.Admin).To(gomega.ContainSubstring("juma@example.com"))
	g.Expect(doc.Admin).NotTo(gomega.ContainSubstring(profile.Greeting))

	g.Expect(doc.User).To(gomega.ContainSubstring(profile.Greeting + " Juma,"))
	g.Expect(doc.User).To(gomega.ContainSubstring("Our team will reach out within the next 24 hours"))
	g.Expect(doc.User).NotTo(gomega.ContainSubstring("0712345678"))
	g.Expect(strings.Count(doc.User, profile.Images.Header)).To(gomega.Equal(1))
}

func TestRenderer_Render_EscapesPayload(t *testing.T) {
	g := gomega.NewGomegaWithT(t)
	// given
	r := newTestRenderer(t)
	rep := haretesting.NewReport(
		haretesting.WithName("<script>alert(1)</script>"),
		haretesting.WithMessage(`<img src=x onerror="steal()">`),
	)

	// when
	doc, err := r.Render(rep)

	// then
	g.Expect(err).Should(gomega.BeNil())
	g.Expect(doc.Admin).NotTo(gomega.ContainSubstring("<script>"))
	g.Expect(doc.Admin).To(gomega.ContainSubstring("&lt;script&gt;"))
	g.Expect(doc.User).NotTo(gomega.ContainSubstring("<img src=x"))
}
