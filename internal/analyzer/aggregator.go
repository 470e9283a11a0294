package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/groupchat-wrapped/internal/lexical"
	"github.com/groupchat-wrapped/internal/models"
	"github.com/groupchat-wrapped/internal/mojibake"
)

// Emoticons, pictographs, transport, flags, dingbats and the enclosed range
var emojiPattern = regexp.MustCompile(
	`[\x{1F600}-\x{1F64F}\x{1F300}-\x{1F5FF}\x{1F680}-\x{1F6FF}\x{1F1E0}-\x{1F1FF}\x{2702}-\x{27B0}\x{24C2}-\x{1F251}]+`,
)

// isNightHour reports whether hour falls in the 00:00-05:59 window
func isNightHour(hour int) bool {
	return hour >= 0 && hour <= 5
}

// reactedMessage is the message that collected the most reactions
type reactedMessage struct {
	message   models.Message
	count     int
	reactions []string
}

// stats holds every aggregate the categories are built from
type stats struct {
	title        string
	messages     []models.Message
	participants []string // Distinct senders, first-seen order

	messagesPerPerson *counter[string]
	nightPerPerson    *counter[string]
	perDay            *counter[string] // "2006-01-02"
	hours             *counter[int]
	weekdays          *counter[int]    // Monday = 0
	months            *counter[string] // "2006-01"

	nouns         *counter[string]
	lengths       map[string][]int
	lengthOrder   []string
	questions     *counter[string]
	links         *counter[string]
	emojis        *counter[string]
	favoriteEmoji map[string]*counter[string]

	photos       *counter[string]
	stickers     *counter[string]
	gifs         *counter[string]
	nameChanges  []GroupEvent
	photoChanges []GroupEvent

	reactionsGiven    *counter[string]
	reactionsReceived *counter[string]
	mostReacted       *reactedMessage

	starters *counter[string]
	enders   *counter[string]

	// Derived after the pass
	streaks        *counter[string]
	absences       map[string]Absence
	averageLengths []SenderAverage
	longest        *models.Message
}

func newStats(title string, messages []models.Message) *stats {
	return &stats{
		title:             title,
		messages:          messages,
		messagesPerPerson: newCounter[string](),
		nightPerPerson:    newCounter[string](),
		perDay:            newCounter[string](),
		hours:             newCounter[int](),
		weekdays:          newCounter[int](),
		months:            newCounter[string](),
		nouns:             newCounter[string](),
		lengths:           make(map[string][]int),
		questions:         newCounter[string](),
		links:             newCounter[string](),
		emojis:            newCounter[string](),
		favoriteEmoji:     make(map[string]*counter[string]),
		photos:            newCounter[string](),
		stickers:          newCounter[string](),
		gifs:              newCounter[string](),
		reactionsGiven:    newCounter[string](),
		reactionsReceived: newCounter[string](),
		starters:          newCounter[string](),
		enders:            newCounter[string](),
		streaks:           newCounter[string](),
		absences:          make(map[string]Absence),
	}
}

// aggregate walks the ordered messages once and then derives the
// history-dependent metrics
func aggregate(title string, messages []models.Message) *stats {
	s := newStats(title, messages)
	for idx := range messages {
		s.observe(idx)
	}
	s.derive()
	return s
}

func (s *stats) observe(idx int) {
	msg := s.messages[idx]
	sender := msg.Sender

	if s.messagesPerPerson.get(sender) == 0 {
		s.participants = append(s.participants, sender)
	}
	s.messagesPerPerson.add(sender, 1)

	ts := msg.Timestamp
	if isNightHour(ts.Hour()) {
		s.nightPerPerson.add(sender, 1)
	}
	s.perDay.add(ts.Format("2006-01-02"), 1)
	s.hours.add(ts.Hour(), 1)
	s.weekdays.add((int(ts.Weekday())+6)%7, 1)
	s.months.add(ts.Format("2006-01"), 1)

	if msg.Type == models.MessageText && msg.Content != "" {
		s.observeText(msg)
	}

	switch msg.Type {
	case models.MessagePhoto:
		s.photos.add(sender, 1)
	case models.MessageSticker:
		s.stickers.add(sender, 1)
	case models.MessageGIF:
		s.gifs.add(sender, 1)
	case models.MessageNameChange:
		s.nameChanges = append(s.nameChanges, GroupEvent{At: ts, Who: sender, Content: msg.Content})
	case models.MessagePhotoChange:
		s.photoChanges = append(s.photoChanges, GroupEvent{At: ts, Who: sender, Content: msg.Content})
	}

	s.observeReactions(msg)

	if IsConversationStarter(s.messages, idx) {
		s.starters.add(sender, 1)
	}
	if IsConversationEnder(s.messages, idx) {
		s.enders.add(sender, 1)
	}
}

func (s *stats) observeText(msg models.Message) {
	sender := msg.Sender

	for _, noun := range lexical.ExtractNouns(msg.Content) {
		s.nouns.add(noun, 1)
	}

	if _, ok := s.lengths[sender]; !ok {
		s.lengthOrder = append(s.lengthOrder, sender)
	}
	s.lengths[sender] = append(s.lengths[sender], utf8.RuneCountInString(msg.Content))

	if strings.Contains(msg.Content, "?") {
		s.questions.add(sender, 1)
	}
	if strings.Contains(strings.ToLower(msg.Content), "http") {
		s.links.add(sender, 1)
	}

	found := emojiPattern.FindAllString(msg.Content, -1)
	s.emojis.add(sender, len(found))
	favorites, ok := s.favoriteEmoji[sender]
	if !ok {
		favorites = newCounter[string]()
		s.favoriteEmoji[sender] = favorites
	}
	for _, e := range found {
		favorites.add(e, 1)
	}
}

func (s *stats) observeReactions(msg models.Message) {
	if len(msg.Reactions) == 0 {
		return
	}

	emojis := make([]string, 0, len(msg.Reactions))
	for _, r := range msg.Reactions {
		if r.Actor != "" {
			s.reactionsGiven.add(mojibake.Repair(r.Actor), 1)
		}
		s.reactionsReceived.add(msg.Sender, 1)
		emojis = append(emojis, mojibake.Repair(r.Reaction))
	}

	if s.mostReacted == nil || len(msg.Reactions) > s.mostReacted.count {
		s.mostReacted = &reactedMessage{message: msg, count: len(msg.Reactions), reactions: emojis}
	}
}

func (s *stats) derive() {
	for _, p := range s.participants {
		s.streaks.add(p, Streak(s.messages, p))
		s.absences[p] = LongestAbsence(s.messages, p)
	}
	s.averageLengths = averageLengths(s.lengths, s.lengthOrder)
	s.longest = LongestMessage(s.messages)
}

// spanDays is the number of whole days between the first and last message
func (s *stats) spanDays() int {
	if len(s.messages) == 0 {
		return 0
	}
	return wholeDays(s.messages[len(s.messages)-1].Timestamp.Sub(s.messages[0].Timestamp))
}
