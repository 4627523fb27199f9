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

package network

// In this file: API limits configuration and validation.

import (
	"errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

// TierLimit is the limiter configuration for one API tier.
type TierLimit struct {
	// Boost in events per minute over the published tier rate.
	Boost int `toml:"boost" validate:"gte=0"`
	// Burst in events per second.  1 is the safe value.
	Burst uint `toml:"burst" validate:"gte=1"`
	// Retries on rate limiting before giving up.
	Retries int `toml:"retries" validate:"gte=1"`
}

// Limits is the complete API limits configuration.
type Limits struct {
	Tier2 TierLimit `toml:"tier2" validate:"required"`
	Tier3 TierLimit `toml:"tier3" validate:"required"`
}

// DefLimits are the default limits, safe for a workspace with a standard
// rate limit arrangement.
var DefLimits = Limits{
	Tier2: TierLimit{Boost: 20, Burst: 1, Retries: 3},
	Tier3: TierLimit{Boost: 120, Burst: 1, Retries: 3},
}

var (
	validate = validator.New()

	// LimitsErrTranslations translates validation errors into English.
	LimitsErrTranslations ut.Translator
)

func init() {
	english := en.New()
	uni := ut.New(english, english)
	var ok bool
	LimitsErrTranslations, ok = uni.GetTranslator("en")
	if !ok {
		panic("internal error: failed to init translator")
	}
	if err := entranslations.RegisterDefaultTranslations(validate, LimitsErrTranslations); err != nil {
		panic(err)
	}
}

// ErrLimitsInvalid indicates that the limits failed validation.
var ErrLimitsInvalid = errors.New("limits validation failed")

// Validate checks the limits invariants.  The returned error unwraps to
// validator.ValidationErrors which can be translated with
// LimitsErrTranslations.
func (l *Limits) Validate() error {
	return validate.Struct(l)
}

// Apply overlays other on l after validating it.
func (l *Limits) Apply(other Limits) error {
	if err := other.Validate(); err != nil {
		return err
	}
	*l = other
	return nil
}
