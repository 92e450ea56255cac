package habits

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/julianstephens/nahar/internal/constants"
)

var titles = map[string]map[string]string{
	"en": {
		"habit_fajr_prayer":      "Fajr prayer",
		"habit_home_workout":     "Home workout",
		"habit_face_exercises":   "Face exercises",
		"habit_quran_recitation": "Quran recitation",
		"habit_mosque_prayer":    "Prayer at the mosque",
		"habit_sunnah_prayers":   "Sunnah prayers",
		"habit_qiyam_al_layl":    "Qiyam al-layl",
		"habit_diet_meal":        "Meal",
	},
	"ar": {
		"habit_fajr_prayer":      "صلاة الفجر",
		"habit_home_workout":     "تمرين منزلي",
		"habit_face_exercises":   "تمارين الوجه",
		"habit_quran_recitation": "تلاوة القرآن",
		"habit_mosque_prayer":    "الصلاة في المسجد",
		"habit_sunnah_prayers":   "صلوات السنة",
		"habit_qiyam_al_layl":    "قيام الليل",
		"habit_diet_meal":        "وجبة",
	},
}

// Title resolves a habit title key for display. Unknown diet keys fall back to
// the meal name embedded in the key; anything else falls back to the key itself.
func Title(titleKey, lang string) string {
	if t, ok := titles[lang][titleKey]; ok {
		return t
	}
	if t, ok := titles[constants.DefaultLanguage][titleKey]; ok {
		return t
	}
	if name, ok := strings.CutPrefix(titleKey, constants.DietTitleKeyPrefix); ok && name != "" {
		words := strings.Split(name, "_")
		for i, w := range words {
			if r, size := utf8.DecodeRuneInString(w); size > 0 {
				words[i] = string(unicode.ToUpper(r)) + w[size:]
			}
		}
		return strings.Join(words, " ")
	}
	return titleKey
}
