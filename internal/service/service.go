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

// Package service defines the tagged result shape returned by the service
// boundary functions.  Callers of a *Service function never need error
// handling of their own: validation failures and internal errors alike are
// converted into a Result with the appropriate HTTP-like status code.
package service

// Result is a discriminated success/error result.  When Success is true,
// Data is set and Error is empty; when false, Error and StatusCode describe
// the failure and Data is nil.
type Result struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data,omitempty"`
	Error      string `json:"error,omitempty"`
}

// OK returns a successful result with status 200.
func OK(data any) Result {
	return Result{Success: true, StatusCode: 200, Data: data}
}

// Err returns a failed result with the given status code and message.
func Err(code int, msg string) Result {
	return Result{Success: false, StatusCode: code, Error: msg}
}
