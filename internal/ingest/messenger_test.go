package ingest

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/groupchat-wrapped/internal/models"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// Timestamps: 1709287200000 = 2024-03-01 10:00:00 UTC
const messengerPage1 = `{
  "participants": [{"name": "PaweÅ\u0082"}, {"name": "Ola"}],
  "title": "Ekipa ð\u009f\u008dº",
  "messages": [
    {"sender_name": "Ola", "timestamp_ms": 1709287260000, "content": "CzeÅ\u009bÄ\u0087!",
     "reactions": [{"reaction": "ð\u009f\u0098\u0086", "actor": "PaweÅ\u0082"}]},
    {"sender_name": "PaweÅ\u0082", "timestamp_ms": 1709287200000, "photos": [{"uri": "a.jpg"}, {"uri": "b.jpg"}]},
    {"sender_name": "Ola", "timestamp_ms": 1709287320000, "content": "Ola named the group Ekipa."},
    {"sender_name": "Ola", "timestamp_ms": 1709287380000, "content": "Ola changed the group photo."},
    {"sender_name": "Ola", "timestamp_ms": 1709287440000, "is_unsent": true}
  ]
}`

const messengerPage2 = `{
  "participants": [{"name": "Ignored"}],
  "title": "Ignored",
  "messages": [
    {"sender_name": "Ola", "timestamp_ms": 1709287500000, "share": {"link": "https://example.com"}},
    {"sender_name": "Ola", "timestamp_ms": 1709287560000, "share": {}},
    {"sender_name": "Ola", "timestamp_ms": 1709287620000, "call_duration": 42},
    {"sender_name": "Ola", "timestamp_ms": 1709287680000, "gifs": [{"uri": "x.gif"}]},
    {"sender_name": "Ola", "timestamp_ms": 1709287740000, "sticker": {"uri": "s.png"}},
    {"sender_name": "Ola", "timestamp_ms": 1709287800000, "videos": [{"uri": "v.mp4"}]},
    {"sender_name": "Ola", "timestamp_ms": 1709287860000, "audio_files": [{"uri": "a.mp4"}]}
  ]
}`

var _ = Describe("Messenger exports", func() {
	var dir string

	BeforeEach(func() {
		dir = tempDir()
	})

	It("merges message files and sorts by timestamp", func() {
		writeFile(dir, "message_1.json", messengerPage1)
		writeFile(dir, "message_2.json", messengerPage2)

		conv, err := Load(dir, time.UTC)
		Expect(err).NotTo(HaveOccurred())

		Expect(conv.Title).To(Equal("Ekipa 🍺"))
		Expect(conv.Participants).To(Equal([]string{"Paweł", "Ola"}))
		Expect(conv.Messages).To(HaveLen(11))

		first := conv.Messages[0]
		Expect(first.Sender).To(Equal("Paweł"))
		Expect(first.Type).To(Equal(models.MessagePhoto))
		Expect(first.Content).To(Equal("[2 zdjęć]"))
		Expect(first.Timestamp).To(Equal(time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC)))

		for i := 1; i < len(conv.Messages); i++ {
			Expect(conv.Messages[i].Timestamp.Before(conv.Messages[i-1].Timestamp)).To(BeFalse())
		}
	})

	It("repairs text and keeps reactions raw", func() {
		writeFile(dir, "message_1.json", messengerPage1)

		conv, err := Load(dir, time.UTC)
		Expect(err).NotTo(HaveOccurred())

		text := conv.Messages[1]
		Expect(text.Type).To(Equal(models.MessageText))
		Expect(text.Content).To(Equal("Cześć!"))
		Expect(text.Reactions).To(Equal([]models.Reaction{
			{Actor: "PaweÅ\u0082", Reaction: "ð\u009f\u0098\u0086"},
		}))
	})

	It("detects group notices and skips entries without content", func() {
		writeFile(dir, "message_1.json", messengerPage1)

		conv, err := Load(dir, time.UTC)
		Expect(err).NotTo(HaveOccurred())

		types := []models.MessageType{}
		for _, m := range conv.Messages {
			types = append(types, m.Type)
		}
		Expect(types).To(Equal([]models.MessageType{
			models.MessagePhoto, models.MessageText, models.MessageNameChange, models.MessagePhotoChange,
		}))
	})

	It("maps every media key", func() {
		path := writeFile(dir, "single.json", messengerPage2)

		conv, err := Load(path, time.UTC)
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Title).To(Equal("Ignored"))

		got := map[models.MessageType]string{}
		for _, m := range conv.Messages {
			got[m.Type] = m.Content
		}
		Expect(conv.Messages[0].Content).To(Equal("https://example.com"))
		Expect(conv.Messages[1].Content).To(Equal("[udostępnienie]"))
		Expect(got).To(HaveKeyWithValue(models.MessageCall, "[rozmowa: 42s]"))
		Expect(got).To(HaveKeyWithValue(models.MessageGIF, "[GIF]"))
		Expect(got).To(HaveKeyWithValue(models.MessageSticker, "[naklejka]"))
		Expect(got).To(HaveKeyWithValue(models.MessageVideo, "[wideo]"))
		Expect(got).To(HaveKeyWithValue(models.MessageAudio, "[audio]"))
	})

	It("converts timestamps to the requested location", func() {
		writeFile(dir, "message_1.json", messengerPage1)
		warsaw, err := time.LoadLocation("Europe/Warsaw")
		Expect(err).NotTo(HaveOccurred())

		conv, err := Load(dir, warsaw)
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Messages[0].Timestamp.Hour()).To(Equal(11))
	})

	It("looks into the first subdirectory with message files", func() {
		writeFile(dir, "inbox/empty/readme.txt", "nothing here")
		writeFile(dir, "inbox/ekipa_123/message_1.json", messengerPage1)

		conv, err := Load(filepath.Join(dir, "inbox"), time.UTC)
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Title).To(Equal("Ekipa 🍺"))
	})

	It("uses the first matching subdirectory in name order", func() {
		writeFile(dir, "b/message_1.json", messengerPage2)
		writeFile(dir, "a/message_1.json", messengerPage1)

		conv, err := Load(dir, time.UTC)
		Expect(err).NotTo(HaveOccurred())
		Expect(conv.Title).To(Equal("Ekipa 🍺"))
	})

	It("rejects directories without message files", func() {
		writeFile(dir, "notes.txt", "hello")

		_, err := Load(dir, time.UTC)
		Expect(errors.Is(err, ErrNoFiles)).To(BeTrue())
	})

	It("rejects exports without messages", func() {
		path := writeFile(dir, "message_1.json", `{"title": "Cisza", "participants": [], "messages": []}`)

		_, err := Load(path, time.UTC)
		Expect(errors.Is(err, ErrNoMessages)).To(BeTrue())
	})

	It("reports malformed JSON", func() {
		path := writeFile(dir, "message_1.json", `{"messages": [`)

		_, err := Load(path, time.UTC)
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, ErrNoMessages)).To(BeFalse())
	})
})
