package llm

// MaxNarrationLength is the maximum length of the intro narration in characters.
// It has to fit on a single slide.
const MaxNarrationLength = 1200

// maxRetries is the number of retries after the first failed attempt
const maxRetries = 3

// NarrationPromptTemplate is the prompt for the intro narration. The first
// argument is the group title, the second the headline numbers and the
// third the list of category winners.
const NarrationPromptTemplate = `Jesteś zabawnym narratorem podsumowania roku ("Wrapped") czatu grupowego "%s".

Statystyki grupy:
%s

Zwycięzcy kategorii:
%s

Napisz krótkie, ciepłe i zabawne wprowadzenie do prezentacji (3-5 zdań, po polsku). Możesz żartobliwie wspomnieć o kilku zwycięzcach. Nie używaj Markdown ani list.

WAŻNE: odpowiedź musi mieć nie więcej niż 1200 znaków.`

// TruncationSuffix is appended when the narration is cut
const TruncationSuffix = "…"
