package lexical

func setOf(lists ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, w := range list {
			set[w] = struct{}{}
		}
	}
	return set
}

var polishStopwords = []string{
	"i", "a", "o", "w", "z", "do", "na", "to", "że", "nie", "się", "co", "jak",
	"ale", "po", "tak", "za", "od", "czy", "już", "tylko", "przez", "jest",
	"są", "być", "było", "będzie", "ten", "ta", "te", "ty", "ja", "on", "ona",
	"my", "wy", "oni", "one", "tego", "tej", "tym", "tych", "tu", "tam", "też",
	"może", "jeszcze", "kiedy", "gdzie", "bo", "no", "dla", "przy", "jako",
	"sobie", "który", "która", "które", "którzy", "mnie", "ciebie", "jego",
	"jej", "ich", "nas", "was", "mi", "ci", "mu", "im", "nam", "wam",
	"ze", "we", "ku", "nad", "pod", "przed", "między", "bez", "u", "oraz",
	"albo", "lub", "więc", "jednak", "gdyż", "ponieważ", "jeśli", "jeżeli",
	"gdy", "ani", "ni", "choć", "chociaż", "aby", "żeby", "by", "czyli",
	"ok", "xd", "xdd", "xddd", "haha", "hehe", "hihi", "lol", "kurwa",
	"sie", "juz", "cos", "np", "itd", "itp", "etc", "btw", "imo",
	"teraz", "dzisiaj", "jutro", "wczoraj", "rano", "wieczorem", "potem",
	"właśnie", "dobra", "dobrze", "dzięki", "super", "fajnie", "okej", "oki",
	"serio", "naprawdę", "chyba", "raczej", "bardzo", "trochę", "dużo", "mało",
	"nic", "coś", "ktoś", "nikt", "wszystko", "każdy", "żaden", "sam", "sama",
	"cały", "cała", "całe", "inny", "inna", "inne", "taki", "taka", "takie",
	"jakiś", "jakaś", "jakieś", "jeden", "jedna", "jedno", "dwa", "trzy",
	"mój", "moja", "moje", "twój", "twoja", "twoje", "nasz", "nasza", "nasze",
	"wasz", "wasza", "wasze", "tutaj", "stąd", "stamtąd", "dokąd",
}

var englishStopwords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "is", "are", "was", "were", "be", "been",
	"being", "have", "has", "had", "do", "does", "did", "will", "would",
	"could", "should", "may", "might", "must", "shall", "can", "need",
	"this", "that", "these", "those", "i", "you", "he", "she", "it", "we",
	"they", "what", "which", "who", "whom", "whose", "where", "when", "why",
	"how", "all", "each", "every", "both", "few", "more", "most", "other",
	"some", "such", "no", "nor", "not", "only", "own", "same", "so", "than",
	"too", "very", "just", "also", "now", "here", "there", "then", "once",
	"if", "because", "as", "until", "while", "although", "though", "after",
	"before", "again", "further", "about", "above", "below", "between",
	"into", "through", "during", "out", "off", "over", "under", "me",
	"my", "myself", "your", "yourself", "his", "him", "himself", "her",
	"herself", "its", "itself", "our", "ourselves", "their", "them",
	"themselves", "am", "up", "down", "yes", "yeah", "yea", "nope", "nah",
	"oh", "ok", "okay", "like", "lol", "lmao", "haha", "hehe", "omg", "wtf",
}

var stopwords = setOf(polishStopwords, englishStopwords)

// Checked in order; the first matching suffix wins.
var nounSuffixes = []string{
	// abstract
	"ość", "anie", "enie", "cie", "stwo", "ctwo",
	// people
	"nik", "arz", "acz", "ista", "owiec", "anin", "ak",
	// feminine
	"ka", "arka", "ica", "izna", "yna",
	// diminutives
	"ek", "ko", "eczko", "ątko",
	"acja", "cja", "sja", "zja", "ura", "ment", "ent",
}

var commonNouns = setOf([]string{
	// places
	"dom", "miasto", "miejsce", "ulica", "sklep", "szkoła", "praca", "biuro", "pokój",
	"kuchnia", "łazienka", "ogród", "park", "las", "góry", "morze", "plaża", "rzeka",
	// people
	"człowiek", "ludzie", "koleżanka", "kolega", "przyjaciel", "znajomy", "rodzina",
	"mama", "tata", "brat", "siostra", "dziecko", "dzieci", "facet", "gość", "babka",
	"dziewczyna", "chłopak", "kobieta", "mężczyzna", "osoba", "typ", "ziomek", "bro",
	// things
	"rzecz", "telefon", "komputer", "samochód", "auto", "rower", "pociąg", "autobus",
	"piwo", "wino", "wódka", "kawa", "herbata", "jedzenie", "obiad", "śniadanie",
	"kolacja", "pizza", "kebab", "burger", "pieniądze", "kasa", "hajs", "forsa",
	// abstract
	"czas", "dzień", "noc", "tydzień", "miesiąc", "rok", "godzina", "minuta",
	"problem", "pytanie", "odpowiedź", "pomysł", "plan", "sprawa", "temat",
	"życie", "zabawa", "impreza", "imba", "party", "mecz", "film", "serial",
	"gra", "muzyka", "piosenka", "historia", "wiadomość", "info", "news",
	// internet
	"link", "zdjęcie", "foto", "pic", "meme", "mem", "gif", "video", "filmik",
	"post", "komentarz", "lajk", "reakcja", "czat", "grupa",
	// emotions
	"miłość", "radość", "smutek", "strach", "stres", "spokój", "energia",
	// weather
	"pogoda", "deszcz", "słońce", "śnieg", "wiatr",
	// body
	"głowa", "ręka", "noga", "oko", "twarz", "serce", "dupa",
	// slang
	"spoko", "git", "luzik", "nara", "sztos", "bajka", "akcja",
})
