package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/groupchat-wrapped/internal/analyzer"
	"github.com/groupchat-wrapped/internal/ingest"
	"github.com/groupchat-wrapped/internal/models"
	"github.com/groupchat-wrapped/internal/render"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
)

const export = `{
  "participants": [{"name": "Ola"}, {"name": "Jan"}],
  "title": "Ekipa",
  "messages": [
    {"sender_name": "Jan", "timestamp_ms": 1709287260000, "content": "Kto idzie na piwo?"},
    {"sender_name": "Ola", "timestamp_ms": 1709287200000, "content": "Hej"}
  ]
}`

type fakeNarrator struct {
	text  string
	err   error
	calls int
}

func (f *fakeNarrator) Narrate(ctx context.Context, result *models.AnalysisResult) (string, error) {
	f.calls++
	return f.text, f.err
}

var _ = Describe("Pipeline", func() {
	var (
		dir      string
		renderer *render.Renderer
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "pipeline-*")
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(os.RemoveAll, dir)

		renderer, err = render.New(zerolog.Nop())
		Expect(err).NotTo(HaveOccurred())
	})

	writeExport := func(content string) string {
		path := filepath.Join(dir, "message_1.json")
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	It("produces a result and slides without a narrator", func() {
		path := writeExport(export)
		p := New(time.UTC, renderer, nil, zerolog.Nop())

		out, err := p.Run(context.Background(), path)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Result.ConversationTitle).To(Equal("Ekipa"))
		Expect(out.Result.TotalMessages).To(Equal(2))
		Expect(out.Result.Categories[len(out.Result.Categories)-1].CategoryID).To(Equal("summary"))
		Expect(string(out.HTML)).To(ContainSubstring(`data-category="summary"`))
		Expect(out.Narration).To(BeEmpty())
	})

	It("puts the narration on a slide", func() {
		path := writeExport(export)
		narrator := &fakeNarrator{text: "Witajcie!"}
		p := New(time.UTC, renderer, narrator, zerolog.Nop())

		out, err := p.Run(context.Background(), path)
		Expect(err).NotTo(HaveOccurred())
		Expect(narrator.calls).To(Equal(1))
		Expect(out.Narration).To(Equal("Witajcie!"))
		Expect(string(out.HTML)).To(ContainSubstring("Witajcie!"))
	})

	It("renders without narration when the narrator fails", func() {
		path := writeExport(export)
		p := New(time.UTC, renderer, &fakeNarrator{err: errors.New("quota")}, zerolog.Nop())

		out, err := p.Run(context.Background(), path)
		Expect(err).NotTo(HaveOccurred())
		Expect(out.Narration).To(BeEmpty())
		Expect(out.HTML).NotTo(BeEmpty())
	})

	It("propagates input-shape errors", func() {
		p := New(time.UTC, renderer, nil, zerolog.Nop())

		_, err := p.Run(context.Background(), dir)
		Expect(errors.Is(err, ingest.ErrNoFiles)).To(BeTrue())

		path := writeExport(`{"title": "Cisza", "participants": [], "messages": []}`)
		_, err = p.Run(context.Background(), path)
		Expect(errors.Is(err, ingest.ErrNoMessages)).To(BeTrue())
		Expect(errors.Is(err, analyzer.ErrNoMessages)).To(BeFalse())
	})
})
