package analyzer

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/groupchat-wrapped/internal/models"
)

// ConversationGap is the silence after which the next message opens a new conversation
const ConversationGap = 4 * time.Hour

// minTimelineShare keeps short-lived names visible on the timeline
const minTimelineShare = 5.0

// Streak returns the longest run of consecutive messages by sender with no
// other sender in between.
func Streak(messages []models.Message, sender string) int {
	longest, current := 0, 0
	for _, msg := range messages {
		if msg.Sender != sender {
			current = 0
			continue
		}
		current++
		if current > longest {
			longest = current
		}
	}
	return longest
}

// Absence is the longest silence of a single sender
type Absence struct {
	Days     int       // Whole days between the two messages
	Returned time.Time // Timestamp of the message that ended the silence
	Found    bool      // False when the sender has fewer than two messages
}

// LongestAbsence finds the largest gap between two consecutive messages of
// sender, ignoring messages of everybody else.
func LongestAbsence(messages []models.Message, sender string) Absence {
	var (
		prev    time.Time
		seen    int
		maxGap  time.Duration
		absence Absence
	)

	for _, msg := range messages {
		if msg.Sender != sender {
			continue
		}
		if seen > 0 {
			if gap := msg.Timestamp.Sub(prev); gap > maxGap {
				maxGap = gap
				absence.Returned = msg.Timestamp
				absence.Found = true
			}
		}
		prev = msg.Timestamp
		seen++
	}

	absence.Days = wholeDays(maxGap)
	return absence
}

// IsConversationStarter reports whether messages[idx] opens a conversation:
// it is the first message or follows a silence longer than ConversationGap.
func IsConversationStarter(messages []models.Message, idx int) bool {
	if idx == 0 {
		return true
	}
	return messages[idx].Timestamp.Sub(messages[idx-1].Timestamp) > ConversationGap
}

// IsConversationEnder reports whether messages[idx] closes a conversation:
// it is the last message or precedes a silence longer than ConversationGap.
func IsConversationEnder(messages []models.Message, idx int) bool {
	if idx == len(messages)-1 {
		return true
	}
	return messages[idx+1].Timestamp.Sub(messages[idx].Timestamp) > ConversationGap
}

// LongestMessage returns the text message with the most characters, the
// earliest one on ties, or nil when there are no text messages.
func LongestMessage(messages []models.Message) *models.Message {
	var (
		longest *models.Message
		maxLen  int
	)
	for i := range messages {
		msg := &messages[i]
		if msg.Type != models.MessageText {
			continue
		}
		n := utf8.RuneCountInString(msg.Content)
		if longest == nil || n > maxLen {
			longest, maxLen = msg, n
		}
	}
	return longest
}

// SenderAverage is the mean text length of one sender
type SenderAverage struct {
	Sender string
	Mean   float64
}

// averageLengths computes the mean length per sender, keeping the order in
// which senders first wrote text. Senders without text never appear.
func averageLengths(lengths map[string][]int, order []string) []SenderAverage {
	averages := make([]SenderAverage, 0, len(order))
	for _, sender := range order {
		ls := lengths[sender]
		if len(ls) == 0 {
			continue
		}
		sum := 0
		for _, l := range ls {
			sum += l
		}
		averages = append(averages, SenderAverage{Sender: sender, Mean: float64(sum) / float64(len(ls))})
	}
	return averages
}

// AverageLengths returns the mean text message length per sender, in order
// of first text message.
func AverageLengths(messages []models.Message) []SenderAverage {
	lengths := make(map[string][]int)
	var order []string
	for _, msg := range messages {
		if msg.Type != models.MessageText || msg.Content == "" {
			continue
		}
		if _, ok := lengths[msg.Sender]; !ok {
			order = append(order, msg.Sender)
		}
		lengths[msg.Sender] = append(lengths[msg.Sender], utf8.RuneCountInString(msg.Content))
	}
	return averageLengths(lengths, order)
}

// GroupEvent is a group name or photo change
type GroupEvent struct {
	At      time.Time
	Who     string
	Content string
}

// groupNameFrom pulls the new group name out of a change notice
func groupNameFrom(content string) string {
	if _, name, ok := strings.Cut(content, "named the group"); ok {
		return strings.Trim(name, ` ."`)
	}
	if _, name, ok := strings.Cut(content, " na "); ok {
		return strings.Trim(name, `".`)
	}
	return content
}

// IdentityTimeline orders the name changes and measures how long each name
// lasted: until the next change, or until end for the last one. Durations
// are whole days with a floor of one. span is the length of the whole
// conversation in days and sets each entry's share of the timeline.
func IdentityTimeline(changes []GroupEvent, end time.Time, span int) []models.TimelineEntry {
	if span < 1 {
		span = 1
	}

	sorted := make([]GroupEvent, len(changes))
	copy(sorted, changes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})

	entries := make([]models.TimelineEntry, 0, len(sorted))
	for i, change := range sorted {
		until := end
		if i+1 < len(sorted) {
			until = sorted[i+1].At
		}

		days := wholeDays(until.Sub(change.At))
		if days < 1 {
			days = 1
		}

		share := float64(days) / float64(span) * 100
		if share < minTimelineShare {
			share = minTimelineShare
		}

		entries = append(entries, models.TimelineEntry{
			Name:       groupNameFrom(change.Content),
			Who:        change.Who,
			Date:       formatShortDate(change.At),
			Days:       days,
			Percentage: share,
			Start:      change.At,
		})
	}
	return entries
}

// sortAveragesDesc orders averages from the longest mean, keeping input order on ties
func sortAveragesDesc(averages []SenderAverage) {
	sort.SliceStable(averages, func(i, j int) bool {
		return averages[i].Mean > averages[j].Mean
	})
}
