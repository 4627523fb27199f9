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

package sentiment

// In this file: human-readable explanation of an analysis result.

import (
	"fmt"
	"strings"
)

// Explain renders the result breakdown as human-readable text, suitable for
// returning verbatim from an MCP tool.
func Explain(r Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Sentiment: %s\n", r.Sentiment)
	fmt.Fprintf(&sb, "Positive matches: %d, negative matches: %d (of %d words)\n",
		r.PositiveCount, r.NegativeCount, r.TotalWords)
	if r.JapanesePositiveCount > 0 || r.JapaneseNegativeCount > 0 {
		fmt.Fprintf(&sb, "Japanese lexicon: %d positive, %d negative\n",
			r.JapanesePositiveCount, r.JapaneseNegativeCount)
	}
	if r.NegationAdjustments > 0 {
		fmt.Fprintf(&sb, "Negation patterns found: %d\n", r.NegationAdjustments)
	}
	if r.EmphasisMultiplier != 1.0 {
		fmt.Fprintf(&sb, "Emphasis multiplier: %.2f\n", r.EmphasisMultiplier)
	}
	if r.MitigationMultiplier != 1.0 {
		fmt.Fprintf(&sb, "Mitigation multiplier: %.2f\n", r.MitigationMultiplier)
	}
	switch {
	case r.Language.MixedLanguage:
		sb.WriteString("Language: mixed English/Japanese\n")
	case r.Language.HasJapanese:
		sb.WriteString("Language: Japanese\n")
	case r.Language.HasEnglish:
		sb.WriteString("Language: English\n")
	}
	return sb.String()
}
