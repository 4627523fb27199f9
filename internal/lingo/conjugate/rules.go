// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package conjugate

// In this file: the ordered suffix rule table and the irregular godan stem
// lookups.

// nasalEndings resolves the ambiguous んで/んだ godan endings by the final
// stem kanji.  Stems not in the table fall back to む, the most common nasal
// godan class.
var nasalEndings = map[rune]string{
	'読': "む", '飲': "む", '込': "む", '住': "む", '休': "む",
	'盗': "む", '頼': "む", '望': "む", '進': "む",
	'呼': "ぶ", '運': "ぶ", '遊': "ぶ", '学': "ぶ", '飛': "ぶ",
	'選': "ぶ", '並': "ぶ",
	'死': "ぬ",
}

// tsuEndings resolves the ambiguous って/った godan endings by the final stem
// kanji.  行く is the lone irregular て-form in the set.  Stems not in the
// table fall back to る.
var tsuEndings = map[rune]string{
	'立': "つ", '持': "つ", '待': "つ", '打': "つ", '勝': "つ",
	'言': "う", '買': "う", '使': "う", '会': "う", '思': "う",
	'歌': "う", '払': "う", '習': "う", '違': "う",
	'行': "く",
}

func lookupEnding(table map[rune]string, fallback string) func(string) string {
	return func(stem string) string {
		runes := []rune(stem)
		if len(runes) == 0 {
			return stem + fallback
		}
		if ending, ok := table[runes[len(runes)-1]]; ok {
			return stem + ending
		}
		return stem + fallback
	}
}

// rules is the suffix cascade, most specific first.  Order matters: the
// passive group must precede the suru group, which must precede the generic
// godan progressive rules, or されています would be caught by ています.
var rules = []rule{
	// passive forms
	{"されていました", 1, base("される")},
	{"されています", 1, base("される")},
	{"されている", 1, base("される")},
	{"されました", 1, base("される")},
	{"されます", 1, base("される")},
	{"されない", 1, base("される")},
	{"された", 1, base("される")},

	// suru verb forms
	{"していました", 1, base("する")},
	{"しています", 1, base("する")},
	{"していた", 1, base("する")},
	{"している", 1, base("する")},
	{"しました", 1, base("する")},
	{"しません", 1, base("する")},
	{"しなかった", 1, base("する")},
	{"します", 1, base("する")},
	{"しない", 1, base("する")},
	{"して", 1, base("する")},

	// godan progressive forms
	{"いています", 1, base("く")},
	{"いでいます", 1, base("ぐ")},
	{"んでいます", 1, lookupEnding(nasalEndings, "む")},
	{"っています", 1, lookupEnding(tsuEndings, "る")},
	{"いている", 1, base("く")},
	{"いでいる", 1, base("ぐ")},
	{"んでいる", 1, lookupEnding(nasalEndings, "む")},
	{"っている", 1, lookupEnding(tsuEndings, "る")},

	// general progressive forms
	{"ています", 1, base("る")},
	{"ている", 1, base("る")},

	// polite past
	{"きました", 1, base("く")},
	{"ぎました", 1, base("ぐ")},
	{"ちました", 1, base("つ")},
	{"にました", 1, base("ぬ")},
	{"びました", 1, base("ぶ")},
	{"みました", 1, base("む")},
	{"りました", 1, base("る")},
	{"いました", 1, base("う")},
	{"ました", 1, base("る")},

	// polite negative.  The adjective くありません comes first: it ends in
	// りません and the verb row would otherwise catch it.
	{"くありません", 1, base("い")},
	{"きません", 1, base("く")},
	{"ぎません", 1, base("ぐ")},
	{"ちません", 1, base("つ")},
	{"にません", 1, base("ぬ")},
	{"びません", 1, base("ぶ")},
	{"みません", 1, base("む")},
	{"りません", 1, base("る")},
	{"いません", 1, base("う")},
	{"ません", 1, base("る")},

	// polite non-past
	{"きます", 1, base("く")},
	{"ぎます", 1, base("ぐ")},
	{"ちます", 1, base("つ")},
	{"にます", 1, base("ぬ")},
	{"びます", 1, base("ぶ")},
	{"みます", 1, base("む")},
	{"ります", 1, base("る")},
	{"います", 1, base("う")},
	{"ます", 1, base("る")},

	// plain negative past.  くなかった (adjective) first, then the verb rows,
	// then the generic fallback; all must precede the かった adjective rule
	// which their suffixes end in.
	{"くなかった", 1, base("い")},
	{"かなかった", 1, base("く")},
	{"さなかった", 1, base("す")},
	{"らなかった", 1, base("る")},
	{"わなかった", 1, base("う")},
	{"なかった", 2, base("る")},

	// adjective forms.  These must precede the godan って/った rules: 良かった
	// ends in った and would otherwise become 良かる.
	{"かった", 1, base("い")},
	{"くない", 1, base("い")},
	{"くて", 1, base("い")},

	// copula forms (だった must also precede った)
	{"でした", 1, base("だ")},
	{"だった", 1, base("だ")},
	{"です", 1, base("")},

	// te-form and plain past, godan
	{"いて", 1, base("く")},
	{"いで", 1, base("ぐ")},
	{"んで", 1, lookupEnding(nasalEndings, "む")},
	{"って", 1, lookupEnding(tsuEndings, "る")},
	{"いた", 1, base("く")},
	{"いだ", 1, base("ぐ")},
	{"んだ", 1, lookupEnding(nasalEndings, "む")},
	{"った", 1, lookupEnding(tsuEndings, "る")},

	// plain negative
	{"かない", 1, base("く")},
	{"がない", 1, base("ぐ")},
	{"さない", 1, base("す")},
	{"たない", 1, base("つ")},
	{"なない", 1, base("ぬ")},
	{"ばない", 1, base("ぶ")},
	{"まない", 1, base("む")},
	{"らない", 1, base("る")},
	{"わない", 1, base("う")},
	{"ない", 2, base("る")},

	// plain past, general (ichidan and suru-noun)
	{"した", 2, base("する")},
	{"た", 2, base("る")},
}
