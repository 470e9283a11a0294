package analyzer

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/groupchat-wrapped/internal/models"
)

// category is one independently computed slide. build reports false when
// the aggregate it needs is empty; the slide is then left out.
type category struct {
	id    string
	build func(s *stats) (models.CategoryResult, bool)
}

// registry lists the categories in presentation order. summary must stay last.
var registry = []category{
	{"night_owl", buildNightOwl},
	{"busiest_day", buildBusiestDay},
	{"prodigal_son", buildProdigalSon},
	{"spam_king", buildSpamKing},
	{"typing_machine", buildTypingMachine},
	{"poet", buildPoet},
	{"dictionary", buildDictionary},
	{"ghost", buildGhost},
	{"starter", buildStarter},
	{"closer", buildCloser},
	{"reactor", buildReactor},
	{"celebrity", buildCelebrity},
	{"viral_message", buildViralMessage},
	{"paparazzo", buildPaparazzo},
	{"comedian", buildComedian},
	{"detective", buildDetective},
	{"link_maniac", buildLinkManiac},
	{"emoji_king", buildEmojiKing},
	{"writer", buildWriter},
	{"peak_hour", buildPeakHour},
	{"busiest_weekday", buildBusiestWeekday},
	{"monthly_activity", buildMonthlyActivity},
	{"group_identity", buildGroupIdentity},
	{"summary", buildSummary},
}

// CategoryIDs returns the ids of all known categories in presentation order
func CategoryIDs() []string {
	ids := make([]string, len(registry))
	for i, c := range registry {
		ids[i] = c.id
	}
	return ids
}

// ranked formats ranking entries as label/value rows
func ranked(entries []entry[string], format func(count int) string) []models.Ranked {
	rows := make([]models.Ranked, len(entries))
	for i, e := range entries {
		rows[i] = models.Ranked{Label: e.Key, Value: format(e.Count)}
	}
	return rows
}

func countWith(suffix string) func(int) string {
	return func(n int) string {
		return fmt.Sprintf("%d%s", n, suffix)
	}
}

func buildNightOwl(s *stats) (models.CategoryResult, bool) {
	if s.nightPerPerson.len() == 0 {
		return models.CategoryResult{}, false
	}
	top := s.nightPerPerson.mostCommon(3)
	totalNight := s.nightPerPerson.total()
	percent := totalNight * 100 / len(s.messages)

	return models.CategoryResult{
		CategoryID: "night_owl",
		Title:      "🦉 Nocny Marek",
		Subtitle:   "Najwięcej wiadomości w nocy (00:00 - 05:00)",
		Icon:       "🌙",
		Winner:     top[0].Key,
		Winners:    ranked(top, countWith(" wiadomości")),
		Value:      top[0].Count,
		ExtraInfo:  "Kiedy inni śpią, oni piszą!",
		FunFact:    fmt.Sprintf("Łącznie wysłano %d nocnych wiadomości (%d%% wszystkich)", totalNight, percent),
	}, true
}

func buildBusiestDay(s *stats) (models.CategoryResult, bool) {
	if s.perDay.len() == 0 {
		return models.CategoryResult{}, false
	}
	busiest := s.perDay.mostCommon(1)[0]
	day, err := time.Parse("2006-01-02", busiest.Key)
	if err != nil {
		return models.CategoryResult{}, false
	}

	return models.CategoryResult{
		CategoryID: "busiest_day",
		Title:      "🔥 Dzień Apokalipsy",
		Subtitle:   "Najbardziej intensywny dzień w historii grupy",
		Icon:       "📅",
		Winner:     formatLongDate(day),
		Value:      busiest.Count,
		ExtraInfo:  fmt.Sprintf("%d wiadomości w jeden dzień!", busiest.Count),
		FunFact:    fmt.Sprintf("To średnio 1 wiadomość co %d sekund!", 86400/busiest.Count),
	}, true
}

func buildProdigalSon(s *stats) (models.CategoryResult, bool) {
	if len(s.participants) == 0 {
		return models.CategoryResult{}, false
	}

	winner := s.participants[0]
	for _, p := range s.participants[1:] {
		if s.absences[p].Days > s.absences[winner].Days {
			winner = p
		}
	}
	absence := s.absences[winner]

	returned := "kiedyś"
	if absence.Found {
		returned = formatLongDate(absence.Returned)
	}

	return models.CategoryResult{
		CategoryID: "prodigal_son",
		Title:      "🚪 Syn Marnotrawny",
		Subtitle:   "Powrót po najdłuższej przerwie",
		Icon:       "👋",
		Winner:     winner,
		Value:      absence.Days,
		ExtraInfo:  fmt.Sprintf("Zniknął na %d dni!", absence.Days),
		FunFact:    "Wrócił " + returned,
	}, true
}

func buildSpamKing(s *stats) (models.CategoryResult, bool) {
	if s.messagesPerPerson.len() == 0 {
		return models.CategoryResult{}, false
	}
	top := s.messagesPerPerson.mostCommon(5)
	total := s.messagesPerPerson.total()

	return models.CategoryResult{
		CategoryID: "spam_king",
		Title:      "👑 Król Spamu",
		Subtitle:   "Najwięcej wiadomości ogółem",
		Icon:       "💬",
		Winner:     top[0].Key,
		Winners: ranked(top, func(n int) string {
			return fmt.Sprintf("%d (%d%%)", n, n*100/total)
		}),
		Value:     top[0].Count,
		ExtraInfo: fmt.Sprintf("%d wiadomości!", top[0].Count),
		FunFact:   fmt.Sprintf("To %d%% wszystkich wiadomości", top[0].Count*100/total),
	}, true
}

func buildTypingMachine(s *stats) (models.CategoryResult, bool) {
	if s.streaks.len() == 0 {
		return models.CategoryResult{}, false
	}
	best := s.streaks.mostCommon(1)[0]

	return models.CategoryResult{
		CategoryID: "typing_machine",
		Title:      "⌨️ Maszyna do Pisania",
		Subtitle:   "Najdłuższy ciąg wiadomości pod rząd",
		Icon:       "🔄",
		Winner:     best.Key,
		Value:      best.Count,
		ExtraInfo:  fmt.Sprintf("%d wiadomości pod rząd!", best.Count),
		FunFact:    "Rozmowa z samym sobą level: ekspert",
	}, true
}

func buildPoet(s *stats) (models.CategoryResult, bool) {
	if s.longest == nil {
		return models.CategoryResult{}, false
	}
	length := utf8.RuneCountInString(s.longest.Content)

	return models.CategoryResult{
		CategoryID: "poet",
		Title:      "📜 Poeta",
		Subtitle:   "Najdłuższa pojedyncza wiadomość",
		Icon:       "✍️",
		Winner:     s.longest.Sender,
		Value:      length,
		ExtraInfo:  fmt.Sprintf("%d znaków!", length),
		FunFact:    fmt.Sprintf("Fragment: \"%s...\"", truncateRunes(s.longest.Content, 100)),
	}, true
}

func buildDictionary(s *stats) (models.CategoryResult, bool) {
	if s.nouns.len() == 0 {
		return models.CategoryResult{}, false
	}
	top := s.nouns.mostCommon(10)

	return models.CategoryResult{
		CategoryID: "dictionary",
		Title:      "📚 Słownik Grupy",
		Subtitle:   "Najczęściej używane rzeczowniki",
		Icon:       "🔤",
		Winner:     top[0].Key,
		Winners:    ranked(top, countWith("x")),
		Value:      top[0].Count,
		ExtraInfo:  fmt.Sprintf("\"%s\" - %d razy!", top[0].Key, top[0].Count),
		FunFact:    "📊 Algorytm: filtrujemy tylko rzeczowniki (po końcówkach i słowniku)",
	}, true
}

func buildGhost(s *stats) (models.CategoryResult, bool) {
	if s.messagesPerPerson.len() == 0 {
		return models.CategoryResult{}, false
	}
	all := s.messagesPerPerson.mostCommon(0)
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	least := all
	if len(least) > 3 {
		least = least[:3]
	}

	return models.CategoryResult{
		CategoryID: "ghost",
		Title:      "👻 Duch",
		Subtitle:   "Najmniej aktywny uczestnik",
		Icon:       "🔇",
		Winner:     least[0].Key,
		Winners:    ranked(least, countWith(" wiadomości")),
		Value:      least[0].Count,
		ExtraInfo:  "Cisza to też odpowiedź!",
	}, true
}

func buildStarter(s *stats) (models.CategoryResult, bool) {
	if s.starters.len() == 0 {
		return models.CategoryResult{}, false
	}
	top := s.starters.mostCommon(3)

	return models.CategoryResult{
		CategoryID: "starter",
		Title:      "🎬 Reżyser",
		Subtitle:   "Najczęściej zaczyna rozmowy",
		Icon:       "▶️",
		Winner:     top[0].Key,
		Winners:    ranked(top, countWith("x")),
		Value:      top[0].Count,
		ExtraInfo:  "Zawsze ma temat do rozmowy!",
		FunFact:    "📊 Algorytm: pierwsza wiadomość po 4+ godzinach ciszy = nowa rozmowa",
	}, true
}

func buildCloser(s *stats) (models.CategoryResult, bool) {
	if s.enders.len() == 0 {
		return models.CategoryResult{}, false
	}
	top := s.enders.mostCommon(3)

	return models.CategoryResult{
		CategoryID: "closer",
		Title:      "🚪 Zamykacz",
		Subtitle:   "Najczęściej kończy rozmowy",
		Icon:       "⏹️",
		Winner:     top[0].Key,
		Winners:    ranked(top, countWith("x")),
		Value:      top[0].Count,
		ExtraInfo:  "Ostatnie słowo zawsze należy do niego!",
		FunFact:    "📊 Algorytm: ostatnia wiadomość przed 4+ godzinami ciszy = koniec rozmowy",
	}, true
}

func buildReactor(s *stats) (models.CategoryResult, bool) {
	if s.reactionsGiven.len() == 0 {
		return models.CategoryResult{}, false
	}
	top := s.reactionsGiven.mostCommon(5)

	return models.CategoryResult{
		CategoryID: "reactor",
		Title:      "❤️ Reakcjonista",
		Subtitle:   "Rozdał najwięcej reakcji",
		Icon:       "👍",
		Winner:     top[0].Key,
		Winners:    ranked(top, countWith(" reakcji")),
		Value:      top[0].Count,
		ExtraInfo:  "Serce grupy!",
	}, true
}

func buildCelebrity(s *stats) (models.CategoryResult, bool) {
	if s.reactionsReceived.len() == 0 {
		return models.CategoryResult{}, false
	}
	top := s.reactionsReceived.mostCommon(5)

	return models.CategoryResult{
		CategoryID: "celebrity",
		Title:      "⭐ Celebryta",
		Subtitle:   "Otrzymał najwięcej reakcji",
		Icon:       "🌟",
		Winner:     top[0].Key,
		Winners:    ranked(top, countWith(" reakcji")),
		Value:      top[0].Count,
		ExtraInfo:  "Gwiazda grupy!",
		FunFact:    "📊 Algorytm: suma wszystkich reakcji otrzymanych na wiadomości",
	}, true
}

func buildViralMessage(s *stats) (models.CategoryResult, bool) {
	if s.mostReacted == nil {
		return models.CategoryResult{}, false
	}
	msg := s.mostReacted.message

	preview := msg.Content
	if utf8.RuneCountInString(preview) > 150 {
		preview = truncateRunes(preview, 150) + "..."
	}

	return models.CategoryResult{
		CategoryID: "viral_message",
		Title:      "💥 Viral",
		Subtitle:   "Wiadomość z największą ilością reakcji",
		Icon:       "🙌",
		Winner:     msg.Sender,
		Value:      s.mostReacted.count,
		ExtraInfo:  fmt.Sprintf("\"%s\"", preview),
		FunFact:    "Reakcje: " + strings.Join(s.mostReacted.reactions, " "),
	}, true
}

func buildPaparazzo(s *stats) (models.CategoryResult, bool) {
	if s.photos.len() == 0 {
		return models.CategoryResult{}, false
	}
	top := s.photos.mostCommon(3)

	return models.CategoryResult{
		CategoryID: "paparazzo",
		Title:      "🖼️ Galernik",
		Subtitle:   "Wysłał najwięcej obrazków",
		Icon:       "📁",
		Winner:     top[0].Key,
		Winners:    ranked(top, countWith(" obrazków")),
		Value:      top[0].Count,
		ExtraInfo:  "Memy, zdjęcia, screenshoty - wszystko się liczy!",
	}, true
}

func buildComedian(s *stats) (models.CategoryResult, bool) {
	fun := newCounter[string]()
	fun.merge(s.gifs)
	fun.merge(s.stickers)
	if fun.len() == 0 {
		return models.CategoryResult{}, false
	}
	top := fun.mostCommon(3)

	return models.CategoryResult{
		CategoryID: "comedian",
		Title:      "🤡 Śmieszek",
		Subtitle:   "Wysłał najwięcej GIFów i naklejek",
		Icon:       "😂",
		Winner:     top[0].Key,
		Winners:    ranked(top, countWith("")),
		Value:      top[0].Count,
		ExtraInfo:  "GIF wart więcej niż 1000 słów!",
	}, true
}

func buildDetective(s *stats) (models.CategoryResult, bool) {
	if s.questions.len() == 0 {
		return models.CategoryResult{}, false
	}
	top := s.questions.mostCommon(3)

	return models.CategoryResult{
		CategoryID: "detective",
		Title:      "🔍 Detektyw",
		Subtitle:   "Zadał najwięcej pytań",
		Icon:       "❓",
		Winner:     top[0].Key,
		Winners:    ranked(top, countWith(" pytań")),
		Value:      top[0].Count,
		ExtraInfo:  "Ciekawość to pierwszy stopień do piekła... wiedzy!",
		FunFact:    "📊 Algorytm: zliczamy wiadomości zawierające znak zapytania (?)",
	}, true
}

func buildLinkManiac(s *stats) (models.CategoryResult, bool) {
	if s.links.len() == 0 {
		return models.CategoryResult{}, false
	}
	top := s.links.mostCommon(3)

	return models.CategoryResult{
		CategoryID: "link_maniac",
		Title:      "🔗 Linkomaniak",
		Subtitle:   "Udostępnił najwięcej linków",
		Icon:       "🌐",
		Winner:     top[0].Key,
		Winners:    ranked(top, countWith(" linków")),
		Value:      top[0].Count,
		ExtraInfo:  "Internet w pigułce!",
	}, true
}

func buildEmojiKing(s *stats) (models.CategoryResult, bool) {
	// Every text message registers its sender, so an all-zero table means no emoji at all
	if s.emojis.total() == 0 {
		return models.CategoryResult{}, false
	}
	top := s.emojis.mostCommon(3)
	winner := top[0].Key

	var funFact string
	if favorites, ok := s.favoriteEmoji[winner]; ok && favorites.len() > 0 {
		parts := make([]string, 0, 3)
		for _, e := range favorites.mostCommon(3) {
			parts = append(parts, fmt.Sprintf("%s(%dx)", e.Key, e.Count))
		}
		funFact = "Ulubione emoji: " + strings.Join(parts, " ")
	}

	return models.CategoryResult{
		CategoryID: "emoji_king",
		Title:      "😎 Emoji Master",
		Subtitle:   "Używa najwięcej emoji",
		Icon:       "🎭",
		Winner:     winner,
		Winners:    ranked(top, countWith(" emoji")),
		Value:      top[0].Count,
		ExtraInfo:  "Obrazek wart więcej niż słowa!",
		FunFact:    funFact,
	}, true
}

func buildWriter(s *stats) (models.CategoryResult, bool) {
	if len(s.averageLengths) == 0 {
		return models.CategoryResult{}, false
	}
	writers := make([]SenderAverage, len(s.averageLengths))
	copy(writers, s.averageLengths)
	sortAveragesDesc(writers)
	if len(writers) > 3 {
		writers = writers[:3]
	}

	rows := make([]models.Ranked, len(writers))
	for i, w := range writers {
		rows[i] = models.Ranked{Label: w.Sender, Value: fmt.Sprintf("śr. %d znaków", int(w.Mean))}
	}

	return models.CategoryResult{
		CategoryID: "writer",
		Title:      "📝 Pisarz",
		Subtitle:   "Najdłuższe średnie wiadomości",
		Icon:       "📖",
		Winner:     writers[0].Sender,
		Winners:    rows,
		Value:      int(writers[0].Mean),
		ExtraInfo:  "Jakość ponad ilość!",
	}, true
}

func buildPeakHour(s *stats) (models.CategoryResult, bool) {
	if s.hours.len() == 0 {
		return models.CategoryResult{}, false
	}
	peak := s.hours.mostCommon(1)[0]

	return models.CategoryResult{
		CategoryID: "peak_hour",
		Title:      "⏰ Godzina Szczytu",
		Subtitle:   "Najbardziej aktywna pora dnia",
		Icon:       "🕐",
		Winner:     fmt.Sprintf("%d:00 - %d:00", peak.Key, peak.Key+1),
		Value:      peak.Count,
		ExtraInfo:  fmt.Sprintf("%d wiadomości o tej porze!", peak.Count),
	}, true
}

func buildBusiestWeekday(s *stats) (models.CategoryResult, bool) {
	if s.weekdays.len() == 0 {
		return models.CategoryResult{}, false
	}
	ranking := s.weekdays.mostCommon(0)
	best := ranking[0]
	quietest := ranking[len(ranking)-1]

	result := models.CategoryResult{
		CategoryID: "busiest_weekday",
		Title:      "📆 Ulubiony Dzień",
		Subtitle:   "Dzień tygodnia z największą liczbą wiadomości",
		Icon:       "🗓️",
		Winner:     polishWeekdays[best.Key],
		Value:      best.Count,
		ExtraInfo:  fmt.Sprintf("%d wiadomości łącznie!", best.Count),
	}
	if len(ranking) > 1 {
		result.FunFact = fmt.Sprintf("Najspokojniej: %s (%d wiadomości)", polishWeekdays[quietest.Key], quietest.Count)
	}
	return result, true
}

func buildMonthlyActivity(s *stats) (models.CategoryResult, bool) {
	if s.months.len() == 0 {
		return models.CategoryResult{}, false
	}

	// Keys were first seen in chronological order
	series := make([]models.Point, 0, s.months.len())
	for _, e := range s.months.entries() {
		series = append(series, models.Point{Label: e.Key, Count: e.Count})
	}
	best := s.months.mostCommon(1)[0]

	return models.CategoryResult{
		CategoryID: "monthly_activity",
		Title:      "📈 Puls Grupy",
		Subtitle:   "Liczba wiadomości w kolejnych miesiącach",
		Icon:       "📊",
		Winner:     formatMonthKey(best.Key),
		Series:     series,
		Value:      best.Count,
		ExtraInfo:  fmt.Sprintf("%d wiadomości w najgorętszym miesiącu!", best.Count),
		FunFact:    fmt.Sprintf("Aktywnych miesięcy: %d", s.months.len()),
	}, true
}

func buildGroupIdentity(s *stats) (models.CategoryResult, bool) {
	if len(s.nameChanges) == 0 && len(s.photoChanges) == 0 {
		return models.CategoryResult{}, false
	}

	end := s.messages[len(s.messages)-1].Timestamp
	timeline := IdentityTimeline(s.nameChanges, end, s.spanDays())

	extra := fmt.Sprintf("%d zmian nazwy", len(s.nameChanges))
	if n := len(s.photoChanges); n > 0 {
		extra += fmt.Sprintf(", %d zmian zdjęcia", n)
	}

	var funFact string
	if len(timeline) > 0 {
		longest := timeline[0]
		for _, e := range timeline[1:] {
			if e.Days > longest.Days {
				longest = e
			}
		}
		funFact = fmt.Sprintf("Najdłuższa nazwa: %d dni", longest.Days)
	}

	return models.CategoryResult{
		CategoryID: "group_identity",
		Title:      "🎭 Metamorfozy",
		Subtitle:   "Historia nazw grupy",
		Icon:       "🎨",
		Timeline:   timeline,
		Value:      len(s.nameChanges),
		ExtraInfo:  extra,
		FunFact:    funFact,
	}, true
}

func buildSummary(s *stats) (models.CategoryResult, bool) {
	first := s.messages[0].Timestamp
	last := s.messages[len(s.messages)-1].Timestamp
	totalDays := s.spanDays() + 1

	avgPerDay := 0.0
	if totalDays > 0 {
		avgPerDay = float64(len(s.messages)) / float64(totalDays)
	}

	lines := []string{
		"📨 Łącznie wiadomości: " + formatThousands(len(s.messages)),
		fmt.Sprintf("👥 Uczestników: %d", len(s.participants)),
		"📅 Dni aktywności: " + formatThousands(totalDays),
		fmt.Sprintf("📊 Średnio dziennie: %.1f", avgPerDay),
	}

	return models.CategoryResult{
		CategoryID: "summary",
		Title:      "📊 Podsumowanie",
		Subtitle:   "Statystyki grupy " + s.title,
		Icon:       "📈",
		ExtraInfo:  strings.Join(lines, "\n"),
		FunFact:    fmt.Sprintf("Od %s do %s", first.Format("02.01.2006"), last.Format("02.01.2006")),
	}, true
}
