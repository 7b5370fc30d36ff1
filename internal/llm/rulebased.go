package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/Darknivht/Agrisense-AI/internal/core"
)

const ruleBasedModel = "basic"

// RuleBased is the deterministic terminal responder of the fallback chain.
// It never fails, so a routed question always gets an answer even with no
// provider credentials configured.
type RuleBased struct{}

var _ Provider = (*RuleBased)(nil)

// NewRuleBased creates the rule-based responder.
func NewRuleBased() *RuleBased {
	return &RuleBased{}
}

func (p *RuleBased) ID() string { return "fallback" }

func (p *RuleBased) Confidence() float64 { return FallbackConfidence }

func (p *RuleBased) Profile() core.ProviderProfile {
	return core.ProviderProfile{
		ID:          "fallback",
		Name:        "Basic Assistant",
		Description: "Built-in agricultural knowledge, no API required",
		Models: []core.ModelInfo{
			{ID: ruleBasedModel, Name: "Basic Rules", Description: "Keyword-based responses", Cost: "Free"},
		},
		DefaultModel: ruleBasedModel,
	}
}

// cropFacts is the embedded knowledge for one crop.
type cropFacts struct {
	PlantingSeason string
	HarvestTime    string
	WaterNeeds     string
}

// cropOrder fixes the match order so a question naming two crops always
// gets the same answer.
var cropOrder = []string{"rice", "maize", "tomato", "cassava"}

var cropKnowledge = map[string]cropFacts{
	"rice": {
		PlantingSeason: "May to July, with the early rains",
		HarvestTime:    "4 to 5 months after planting",
		WaterNeeds:     "standing water or consistently wet soil",
	},
	"maize": {
		PlantingSeason: "March to May for the first season, August for the second",
		HarvestTime:    "3 to 4 months after planting",
		WaterNeeds:     "regular rainfall, about 500-800mm per season",
	},
	"tomato": {
		PlantingSeason: "nursery in the dry season, transplant at the start of rains",
		HarvestTime:    "2 to 3 months after transplanting",
		WaterNeeds:     "steady moisture; avoid waterlogging to prevent blight",
	},
	"cassava": {
		PlantingSeason: "early rainy season, April to June",
		HarvestTime:    "9 to 12 months after planting",
		WaterNeeds:     "drought tolerant once established",
	},
}

func (p *RuleBased) Generate(_ context.Context, prompt Prompt, _ string) (string, string, error) {
	lang := prompt.Language
	if lang == "" {
		lang = "en"
	}
	msg := strings.ToLower(prompt.Question)

	switch {
	case containsAny(msg, "weather", "rain", "ruwa", "ojo", "mmiri ozuzo", "sunshine", "temperature"):
		return pickText(weatherAdvice, lang), ruleBasedModel, nil
	case containsAny(msg, "pest", "insect", "disease", "kwari", "kokoro", "ahuhu"):
		return pickText(pestAdvice, lang), ruleBasedModel, nil
	case containsAny(msg, "market", "price", "sell", "kasuwa", "oja", "ahia"):
		return pickText(marketAdvice, lang), ruleBasedModel, nil
	}

	for _, crop := range cropOrder {
		if facts, ok := cropKnowledge[crop]; ok && strings.Contains(msg, crop) {
			return fmt.Sprintf(pickText(cropAdviceFormat, lang), crop, facts.PlantingSeason, facts.HarvestTime, facts.WaterNeeds), ruleBasedModel, nil
		}
	}

	name := prompt.UserName
	if name == "" {
		name = pickText(genericFarmer, lang)
	}
	return fmt.Sprintf(pickText(greeting, lang), name), ruleBasedModel, nil
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// pickText returns the authored text for a language, falling back to
// English.
func pickText(m map[string]string, lang string) string {
	if t, ok := m[lang]; ok {
		return t
	}
	return m["en"]
}

// ErrorMessage is the localized apology used on the degraded path where
// every provider attempt failed.
func ErrorMessage(lang string) string {
	return pickText(errorMessages, lang)
}

var weatherAdvice = map[string]string{
	"en": "For weather-dependent decisions: plant most crops at the start of the rainy season (March-May in southern Nigeria, May-June in the north). Avoid planting before heavy rains are established, and harvest grains during dry spells to reduce storage losses.",
	"ha": "Don yanke shawara bisa yanayi: shuka yawancin amfanin gona a farkon damina (Maris-Mayu a kudanci, Mayu-Yuni a arewa). Ka guji shuka kafin ruwan sama ya tabbata, ka girbe hatsi lokacin rani don rage asarar ajiya.",
	"yo": "Fun ipinnu ti o da lori oju ojo: gbin ọpọlọpọ awọn irugbin ni ibẹrẹ akoko ojo (Oṣu Kẹta si Karun ni gusu, Karun si Kẹfa ni ariwa). Yago fun gbigbin ṣaaju ki ojo to duro ṣinṣin, ki o si kore ọkà ni akoko gbigbẹ.",
	"ig": "Maka mkpebi dabeere na ihu igwe: kụọ ọtụtụ ihe ọkụkụ na mbido oge mmiri ozuzo (Machị-Mee na ndịda, Mee-Juun n'ugwu). Zere ịkụ ihe tupu mmiri ozuzo aguzosie ike, wee ghọrọ ọka n'oge kpọrọ nkụ.",
	"ff": "Ngam kuuɗe paaɗe e weeyo: aaw gese ɗuuɗɗe e puɗɗoode ndunngu. Woɗɗito aawde ado toɓo tabitde, sonndu gawri e ceeɗu ngam ustude bonande mooftugol.",
}

var pestAdvice = map[string]string{
	"en": "For pest and disease control: inspect your farm weekly, remove and burn infected plants, rotate crops each season, and use neem-based solutions as a first treatment. Contact your local extension officer before applying chemical pesticides.",
	"ha": "Don magance kwari da cututtuka: duba gonarka kowane mako, cire ka kona tsirran da suka kamu, sauya amfanin gona kowane kakar, ka yi amfani da maganin neem da farko. Tuntubi jami'in noma kafin amfani da magungunan sinadarai.",
	"yo": "Fun iṣakoso kokoro ati arun: ṣayẹwo oko rẹ lọsọọsẹ, yọ awọn eweko ti o ni arun kuro ki o sun wọn, yi irugbin pada ni gbogbo akoko, lo oogun neem gẹgẹbi itọju akọkọ. Kan si oṣiṣẹ itẹsiwaju agbegbe rẹ ṣaaju lilo oogun kemikali.",
	"ig": "Maka nchịkwa ahụhụ na ọrịa: nyochaa ugbo gị kwa izu, wepụ ma kpọọ osisi ndị butere ọrịa ọkụ, gbanwee ihe ọkụkụ kwa oge, jiri ngwọta neem dịka ọgwụgwọ mbụ. Kpọtụrụ onye ọrụ mgbasa ozi ugbo tupu iji ọgwụ kemịkal.",
	"ff": "Ngam haɗde buubi e nawnaaje: ndaartu ngesa maa yontere kala, ittu puɗi nawnuɗi naa sumaa ɗi, waylitoo gese yontere kala, huutoro lekki neem ko adii. Yewtu gollotooɗo ngesa ado huutoraade leɗɗe safaara.",
}

var marketAdvice = map[string]string{
	"en": "For better market prices: avoid selling immediately after harvest when prices are lowest, store produce properly to sell in the off-season, join a farmers' cooperative for collective bargaining, and compare prices across nearby markets before selling.",
	"ha": "Don samun farashi mai kyau: ka guji sayarwa nan da nan bayan girbi lokacin da farashi ya yi kasa, ajiye amfanin gona yadda ya kamata don sayarwa a lokacin karanci, shiga kungiyar manoma don tattaunawar farashi tare, ka kwatanta farashi a kasuwanni na kusa kafin sayarwa.",
	"yo": "Fun owo oja to dara: yago fun tita lẹsẹkẹsẹ lẹhin ikore nigbati owo ba kere julọ, to ọja pamọ daradara lati ta ni akoko aito, darapọ mọ ẹgbẹ agbẹ fun idunadura apapọ, ṣe afiwe owo ni awọn ọja agbegbe ṣaaju tita.",
	"ig": "Maka ọnụahịa ahịa ka mma: zere ire ozugbo owuwe ihe ubi mgbe ọnụahịa kacha ala, chekwaa ihe ubi nke ọma ka ị ree n'oge ụkọ, sonye na otu ndị ọrụ ugbo maka mkparịta ụka ọnụahịa, tulee ọnụahịa n'ahịa ndị dị nso tupu ị ree.",
	"ff": "Ngam keɓgol coggu moƴƴu: woɗɗito yeeyde ɗaɓɓitaŋke caggal sonngo tuma coggu ɓuri famɗude, mooftu ñamri no feewi ngam yeeyde tuma ɗuum satti, naatu fedde remooɓe ngam haala coggu denndaangal, ƴeewndo coggu e luumooji takkiiɗi ado yeeyde.",
}

// cropAdviceFormat takes crop name, planting season, harvest time and
// water needs.
var cropAdviceFormat = map[string]string{
	"en": "Here is what I know about %s: plant during %s. Expect harvest %s. Water needs: %s. Ask your local extension officer for variety recommendations suited to your area.",
	"ha": "Ga abin da na sani game da %s: shuka a lokacin %s. Ana sa ran girbi %s. Bukatar ruwa: %s. Tambayi jami'in noma na yankinka don shawarar iri da suka dace da yankinka.",
	"yo": "Eyi ni ohun ti mo mọ nipa %s: gbin ni akoko %s. Reti ikore %s. Iwulo omi: %s. Beere lọwọ oṣiṣẹ itẹsiwaju agbegbe rẹ fun imọran irugbin to yẹ fun agbegbe rẹ.",
	"ig": "Nke a bụ ihe m maara gbasara %s: kụọ n'oge %s. Tụọ anya owuwe ihe ubi %s. Mkpa mmiri: %s. Jụọ onye ọrụ mgbasa ozi ugbo gị maka ụdị kwesịrị mpaghara gị.",
	"ff": "Ko ɗum ngan-mi e %s: aaw e saanga %s. Sonngo ina habbaa %s. Haaju ndiyam: %s. Lamndo gollotooɗo ngesa leydi maa ngam anndude iri keɓɗi nokku maa.",
}

var greeting = map[string]string{
	"en": "Hello %s! I am AgriSense, your farming assistant. You can ask me about planting seasons, pest control, market prices, or the weather. What would you like to know?",
	"ha": "Sannu %s! Ni ne AgriSense, mataimakinka na noma. Za ka iya tambayata game da lokutan shuka, magance kwari, farashin kasuwa, ko yanayi. Me kake son sani?",
	"yo": "Pẹlẹ o %s! Emi ni AgriSense, oluranlọwọ oko rẹ. O le bi mi nipa akoko gbigbin, iṣakoso kokoro, owo oja, tabi oju ojo. Kini o fẹ mọ?",
	"ig": "Ndewo %s! Abụ m AgriSense, onye inyeaka ọrụ ugbo gị. Ị nwere ike ịjụ m gbasara oge ịkụ ihe, nchịkwa ahụhụ, ọnụahịa ahịa, ma ọ bụ ihu igwe. Gịnị ka ị chọrọ ịma?",
	"ff": "Jam weeti %s! Ko miin woni AgriSense, ballo maa ngesa. Aɗa waawi lamndaade kam saanga aawde, haɗde buubi, coggu luumo, walla weeyo. Hol ko njiɗ-ɗaa anndude?",
}

var genericFarmer = map[string]string{
	"en": "Farmer",
	"ha": "Manomi",
	"yo": "Agbẹ",
	"ig": "Onye ọrụ ugbo",
	"ff": "Demoowo",
}

var errorMessages = map[string]string{
	"en": "I am sorry, I could not process your question right now. Please try again in a moment.",
	"ha": "Yi hakuri, ban iya aiwatar da tambayarka a yanzu ba. Da fatan za a sake gwadawa nan gaba kadan.",
	"yo": "Ma binu, emi ko le ṣe ilana ibeere rẹ ni bayi. Jọwọ gbiyanju lẹẹkansi laipẹ.",
	"ig": "Ndo, enweghị m ike ịzaghachi ajụjụ gị ugbu a. Biko nwaa ọzọ n'oge na-adịghị anya.",
	"ff": "Yaafo, mi waawaani jaabaade naamnal maa jooni. Tiiɗno eto kadi seeɗa.",
}
