package analyzer

import (
	"time"

	"github.com/groupchat-wrapped/internal/models"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Derived metrics", func() {
	Describe("Streak", func() {
		messages := []models.Message{
			text("A", at(0), "a"),
			text("A", at(time.Minute), "b"),
			text("B", at(2*time.Minute), "c"),
			text("A", at(3*time.Minute), "d"),
			text("A", at(4*time.Minute), "e"),
			text("A", at(5*time.Minute), "f"),
			text("B", at(6*time.Minute), "g"),
		}

		It("finds the longest uninterrupted run", func() {
			Expect(Streak(messages, "A")).To(Equal(3))
			Expect(Streak(messages, "B")).To(Equal(1))
		})

		It("returns zero for unknown senders", func() {
			Expect(Streak(messages, "C")).To(Equal(0))
		})
	})

	Describe("LongestAbsence", func() {
		It("measures gaps between the sender's own messages only", func() {
			messages := []models.Message{
				text("A", at(0), "hi"),
				text("B", at(24*time.Hour), "hello"),
				text("A", at(3*24*time.Hour+time.Hour), "back"),
				text("A", at(4*24*time.Hour), "again"),
			}

			absence := LongestAbsence(messages, "A")
			Expect(absence.Found).To(BeTrue())
			Expect(absence.Days).To(Equal(3))
			Expect(absence.Returned).To(Equal(at(3*24*time.Hour + time.Hour)))
		})

		It("has no absence with fewer than two messages", func() {
			messages := []models.Message{text("A", at(0), "hi"), text("B", at(time.Hour), "yo")}

			absence := LongestAbsence(messages, "B")
			Expect(absence.Found).To(BeFalse())
			Expect(absence.Days).To(Equal(0))
		})
	})

	Describe("conversation boundaries", func() {
		It("flags a single message as both starter and ender", func() {
			messages := []models.Message{text("A", at(0), "alone")}
			Expect(IsConversationStarter(messages, 0)).To(BeTrue())
			Expect(IsConversationEnder(messages, 0)).To(BeTrue())
		})

		It("splits conversations on silences longer than four hours", func() {
			messages := []models.Message{
				text("A", at(0), "one"),
				text("B", at(5*time.Minute), "two"),
				text("B", at(6*time.Minute), "three"),
				text("A", at(29*time.Hour), "four"),
			}

			starters := []bool{}
			enders := []bool{}
			for i := range messages {
				starters = append(starters, IsConversationStarter(messages, i))
				enders = append(enders, IsConversationEnder(messages, i))
			}
			Expect(starters).To(Equal([]bool{true, false, false, true}))
			Expect(enders).To(Equal([]bool{false, false, true, true}))
		})

		It("does not split on a gap of exactly four hours", func() {
			messages := []models.Message{text("A", at(0), "one"), text("B", at(4*time.Hour), "two")}
			Expect(IsConversationStarter(messages, 1)).To(BeFalse())
			Expect(IsConversationEnder(messages, 0)).To(BeFalse())
		})
	})

	Describe("LongestMessage", func() {
		It("keeps the first of equally long text messages", func() {
			messages := []models.Message{
				text("A", at(0), "abcd"),
				media("B", at(time.Minute), models.MessageShare),
				text("B", at(2*time.Minute), "wxyz"),
				text("C", at(3*time.Minute), "ab"),
			}
			Expect(LongestMessage(messages).Sender).To(Equal("A"))
		})

		It("counts characters, not bytes", func() {
			messages := []models.Message{
				text("A", at(0), "ąęśćź"),
				text("B", at(time.Minute), "abcdef"),
			}
			Expect(LongestMessage(messages).Sender).To(Equal("B"))
		})

		It("returns nil without text messages", func() {
			messages := []models.Message{media("A", at(0), models.MessagePhoto)}
			Expect(LongestMessage(messages)).To(BeNil())
		})
	})

	Describe("AverageLengths", func() {
		It("omits senders without text messages", func() {
			messages := []models.Message{
				text("A", at(0), "abcd"),
				media("B", at(time.Minute), models.MessagePhoto),
				text("A", at(2*time.Minute), "ab"),
				text("C", at(3*time.Minute), "abcdef"),
			}
			Expect(AverageLengths(messages)).To(Equal([]SenderAverage{
				{Sender: "A", Mean: 3},
				{Sender: "C", Mean: 6},
			}))
		})
	})

	Describe("IdentityTimeline", func() {
		day := 24 * time.Hour
		changes := []GroupEvent{
			{At: at(10 * day), Who: "B", Content: `B named the group Ekipa 2.0.`},
			{At: at(0), Who: "A", Content: `A zmienił nazwę grupy na "Ekipa".`},
			{At: at(3*day + time.Hour), Who: "C", Content: "C named the group Wakacje"},
		}
		end := at(20 * day)

		It("orders changes and extracts the new names", func() {
			timeline := IdentityTimeline(changes, end, 20)

			names := []string{}
			for _, e := range timeline {
				names = append(names, e.Name)
			}
			Expect(names).To(Equal([]string{"Ekipa", "Wakacje", "Ekipa 2.0"}))
			Expect(timeline[0].Who).To(Equal("A"))
			Expect(timeline[0].Date).To(Equal("1 mar"))
		})

		It("sums durations to the span from the first change to the end", func() {
			timeline := IdentityTimeline(changes, end, 20)

			total := 0
			for _, e := range timeline {
				total += e.Days
			}
			span := wholeDays(end.Sub(at(0)))
			Expect(total).To(BeNumerically("<=", span))
			Expect(total).To(BeNumerically(">=", span-len(timeline)))
			Expect(timeline[0].Days).To(Equal(3))
			Expect(timeline[1].Days).To(Equal(6))
			Expect(timeline[2].Days).To(Equal(10))
		})

		It("floors durations to one day and shares to five percent", func() {
			short := []GroupEvent{
				{At: at(0), Who: "A", Content: "A named the group X"},
				{At: at(time.Hour), Who: "A", Content: "A named the group Y"},
			}
			timeline := IdentityTimeline(short, at(100*day), 100)
			Expect(timeline[0].Days).To(Equal(1))
			Expect(timeline[0].Percentage).To(Equal(5.0))
			Expect(timeline[1].Days).To(Equal(99))
			Expect(timeline[1].Percentage).To(BeNumerically("~", 99.0, 0.001))
		})
	})
})
