package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/groupchat-wrapped/internal/models"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
)

func sampleResult() *models.AnalysisResult {
	winners := make([]models.Ranked, 7)
	for i := range winners {
		winners[i] = models.Ranked{Label: fmt.Sprintf("Osoba %d", i+1), Value: fmt.Sprintf("%d wiadomości", 70-i)}
	}

	timeline := make([]models.TimelineEntry, 10)
	for i := range timeline {
		timeline[i] = models.TimelineEntry{Name: fmt.Sprintf("Nazwa %d", i), Date: fmt.Sprintf("%d mar", i+1), Days: i + 1}
	}
	timeline[0].Name = "Bardzo długa nazwa grupy która się nie mieści"

	return &models.AnalysisResult{
		ConversationTitle: "Ekipa <3",
		TotalMessages:     12345,
		TotalParticipants: 7,
		DateRange: models.DateRange{
			Start: time.Date(2024, time.January, 2, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.December, 30, 22, 0, 0, 0, time.UTC),
		},
		Categories: []models.CategoryResult{
			{CategoryID: "spam_king", Title: "👑 Król Spamu", Icon: "💬", Winner: "Osoba 1", Winners: winners, Value: 70},
			{CategoryID: "typing_machine", Title: "⌨️ Maszyna do Pisania", Winner: "Osoba 2", Value: 1500, ExtraInfo: "1500 wiadomości pod rząd!"},
			{CategoryID: "monthly_activity", Title: "📈 Puls Grupy", Winner: "marzec 2024", Series: []models.Point{
				{Label: "2024-02", Count: 50}, {Label: "2024-03", Count: 200}, {Label: "2024-04", Count: 1},
			}},
			{CategoryID: "group_identity", Title: "🎭 Metamorfozy", Timeline: timeline},
			{CategoryID: "summary", Title: "📊 Podsumowanie", ExtraInfo: "linia pierwsza\nlinia druga", FunFact: "Od 02.01.2024 do 30.12.2024"},
		},
	}
}

var _ = Describe("Layout", func() {
	DescribeTable("picks the slide layout",
		func(cat models.CategoryResult, want string) {
			Expect(Layout(cat)).To(Equal(want))
		},
		Entry("identity with a timeline", models.CategoryResult{CategoryID: "group_identity", Timeline: []models.TimelineEntry{{Name: "A"}}}, LayoutTimeline),
		Entry("identity with photo changes only", models.CategoryResult{CategoryID: "group_identity"}, LayoutSingle),
		Entry("series", models.CategoryResult{CategoryID: "monthly_activity", Series: []models.Point{{Label: "2024-01", Count: 1}}}, LayoutGraph),
		Entry("summary", models.CategoryResult{CategoryID: "summary"}, LayoutSummary),
		Entry("several winners", models.CategoryResult{CategoryID: "ghost", Winners: []models.Ranked{{Label: "A"}, {Label: "B"}}}, LayoutTopList),
		Entry("one ranked winner", models.CategoryResult{CategoryID: "ghost", Winners: []models.Ranked{{Label: "A"}}}, LayoutSingle),
		Entry("plain winner", models.CategoryResult{CategoryID: "poet", Winner: "A"}, LayoutSingle),
	)
})

var _ = Describe("Renderer", func() {
	var (
		r   *Renderer
		out string
	)

	render := func(result *models.AnalysisResult, narration string) string {
		var buf bytes.Buffer
		Expect(r.Render(&buf, result, narration)).To(Succeed())
		return buf.String()
	}

	BeforeEach(func() {
		var err error
		r, err = New(zerolog.Nop())
		Expect(err).NotTo(HaveOccurred())
		out = render(sampleResult(), "")
	})

	It("renders one slide per category after the intro", func() {
		Expect(strings.Count(out, `data-category="`)).To(Equal(6))
		Expect(strings.Index(out, `data-category="intro"`)).To(BeNumerically("<", strings.Index(out, `data-category="spam_king"`)))
		Expect(strings.Index(out, `data-category="group_identity"`)).To(BeNumerically("<", strings.Index(out, `data-category="summary"`)))
	})

	It("escapes user content", func() {
		Expect(out).To(ContainSubstring("Ekipa &lt;3"))
		Expect(out).NotTo(ContainSubstring("Ekipa <3"))
	})

	It("fills the intro with headline numbers", func() {
		Expect(out).To(ContainSubstring("12,345 wiadomości • 7 uczestników"))
		Expect(out).To(ContainSubstring("02.01.2024 - 30.12.2024"))
		Expect(out).To(ContainSubstring("Wrapped 2024"))
	})

	It("caps top lists at five medal rows", func() {
		Expect(strings.Count(out, `<span class="rank">`)).To(Equal(5))
		Expect(out).To(ContainSubstring("🥇"))
		Expect(out).To(ContainSubstring("5️⃣"))
		Expect(out).NotTo(ContainSubstring("Osoba 6"))
	})

	It("caps the timeline at eight segments and shortens long names", func() {
		Expect(strings.Count(out, `class="timeline-segment"`)).To(Equal(8))
		Expect(out).To(ContainSubstring("Bardzo długa nazwa g..."))
		Expect(out).To(ContainSubstring("flex: 1; background: #f093fb;"))
	})

	It("scales graph bars to the busiest month", func() {
		Expect(out).To(ContainSubstring("height: 100%;"))
		Expect(out).To(ContainSubstring("height: 25%;"))
		Expect(out).To(ContainSubstring("height: 2%;"))
		Expect(out).To(ContainSubstring("03.24"))
	})

	It("splits summary lines", func() {
		Expect(out).To(ContainSubstring("linia pierwsza<br>linia druga"))
	})

	It("formats single values with separators", func() {
		Expect(out).To(ContainSubstring(`<p class="value">1,500</p>`))
	})

	It("adds a narration slide only when there is narration", func() {
		Expect(out).NotTo(ContainSubstring(`data-category="narration"`))

		withNarration := render(sampleResult(), "Cześć ekipo!")
		Expect(withNarration).To(ContainSubstring(`data-category="narration"`))
		Expect(withNarration).To(ContainSubstring("Cześć ekipo!"))
	})

	It("rejects a nil result", func() {
		var buf bytes.Buffer
		Expect(r.Render(&buf, nil, "")).NotTo(Succeed())
	})
})

var _ = Describe("RenderJSON", func() {
	It("writes the result with snake_case keys", func() {
		var buf bytes.Buffer
		Expect(RenderJSON(&buf, sampleResult())).To(Succeed())

		var decoded map[string]interface{}
		Expect(json.Unmarshal(buf.Bytes(), &decoded)).To(Succeed())
		Expect(decoded).To(HaveKeyWithValue("conversation_title", "Ekipa <3"))
		Expect(decoded).To(HaveKeyWithValue("total_messages", BeNumerically("==", 12345)))

		categories := decoded["categories"].([]interface{})
		Expect(categories).To(HaveLen(5))
		Expect(categories[0]).To(HaveKeyWithValue("category_id", "spam_king"))
	})
})
