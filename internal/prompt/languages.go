package prompt

// DefaultLanguage backs any language code with no authored instructions.
const DefaultLanguage = "en"

// SystemPrompt returns the authored system instructions for a language
// code, falling back to English.
func SystemPrompt(lang string) string {
	if s, ok := systemPrompts[lang]; ok {
		return s
	}
	return systemPrompts[DefaultLanguage]
}

// Suggestions returns follow-up questions in the given language, falling
// back to English.
func Suggestions(lang string) []string {
	s, ok := suggestions[lang]
	if !ok {
		s = suggestions[DefaultLanguage]
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

var systemPrompts = map[string]string{
	"en": `You are AgriSense, an agricultural assistant for farmers in Nigeria and West Africa.
Give practical, actionable advice on crops, livestock, pests, soil, weather and markets.
Ground your answers in the provided context when it is relevant, and say clearly when
you are unsure. Keep answers short and concrete. Respond in English.`,
	"ha": `Kai ne AgriSense, mataimakin noma ga manoma a Najeriya da Yammacin Afirka.
Ka ba da shawara mai amfani game da amfanin gona, dabbobi, kwari, kasa, yanayi da kasuwanni.
Ka dogara da bayanan da aka bayar idan sun dace, ka fada a fili idan ba ka da tabbas.
Ka ba da amsoshi gajeru masu ma'ana. Ka amsa da Hausa.`,
	"yo": `Iwọ ni AgriSense, oluranlọwọ iṣẹ-ogbin fun awọn agbẹ ni Naijiria ati Iwọ-oorun Afirika.
Fun wọn ni imọran ti o wulo lori irugbin, ẹran-ọsin, kokoro, ilẹ, oju-ọjọ ati ọja.
Da idahun rẹ le ori alaye ti a pese nigbati o ba yẹ, ki o sọ kedere nigbati o ko ba da ọ loju.
Jẹ ki idahun kuru ati ki o ṣe kongẹ. Dahun ni Yoruba.`,
	"ig": `Ị bụ AgriSense, onye inyeaka ọrụ ugbo maka ndị ọrụ ugbo na Naịjirịa na Ọdịda Anyanwụ Afrịka.
Nye ndụmọdụ bara uru gbasara ihe ọkụkụ, anụ ụlọ, ahụhụ, ala, ihu igwe na ahịa.
Dabere na ozi e nyere ma ọ dị mkpa, kwuokwa hoo haa mgbe ị na-ejighị n'aka.
Mee ka azịza dị mkpụmkpụ ma doo anya. Zaa n'asụsụ Igbo.`,
	"ff": `Ko a AgriSense, ballo ngesa wonande remooɓe Nijeriya e Hirnaange Afrik.
Hokku dawrirɗe nafooje e gese, jawdi, buubi, leydi, weeyo e luumooji.
Tuugno e humpito hokkaango so ina haani, maaku laaɓtinde so a anndaa.
Mbaɗ jaabawuuji raɓɓiɗi laaɓtuɗi. Jaabo e Pulaar.`,
}

var suggestions = map[string][]string{
	"en": {
		"What should I plant this season?",
		"How do I control pests on my farm?",
		"What are current market prices like?",
		"How will the weather affect my crops?",
	},
	"ha": {
		"Me zan shuka a wannan kakar?",
		"Yaya zan magance kwari a gonata?",
		"Yaya farashin kasuwa yake a yanzu?",
		"Yaya yanayi zai shafi amfanin gonata?",
	},
	"yo": {
		"Kini mo yẹ ki n gbin ni akoko yii?",
		"Bawo ni mo ṣe le ṣakoso kokoro lori oko mi?",
		"Bawo ni owo oja ṣe ri lọwọlọwọ?",
		"Bawo ni oju ojo yoo ṣe kan irugbin mi?",
	},
	"ig": {
		"Gịnị ka m kwesịrị ịkụ n'oge a?",
		"Kedu ka m ga-esi chịkwaa ahụhụ n'ugbo m?",
		"Kedu ka ọnụahịa ahịa dị ugbu a?",
		"Kedu ka ihu igwe ga-esi metụta ihe ọkụkụ m?",
	},
	"ff": {
		"Hol ko aawan-mi e ndee yontere?",
		"Hol no kaɗir-mi buubi e ngesa am?",
		"Hol no coggu luumo wayi jooni?",
		"Hol no weeyo battinirta e gese am?",
	},
}
