// Copyright 2025 Caselens Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

// repairJSON attempts to fix common JSON formatting issues from LLM responses.
// It specifically handles missing opening quotes before keys in JSON objects,
// e.g. `{category":` becomes `{"category":`.
func repairJSON(s string) string {
	src := []rune(s)
	out := make([]rune, 0, len(src)+16)

	i := 0
	for i < len(src) {
		ch := src[i]

		// Unquoted keys can only appear after { or ,
		if ch == '{' || ch == ',' {
			out = append(out, ch)
			i++

			for i < len(src) && (src[i] == ' ' || src[i] == '\n' || src[i] == '\t') {
				out = append(out, src[i])
				i++
			}

			if i < len(src) && src[i] != '"' && isLetter(src[i]) {
				keyStart := i
				for i < len(src) && (isLetter(src[i]) || src[i] == '_') {
					i++
				}

				// A key name followed by ": means the opening quote was dropped
				if i+1 < len(src) && src[i] == '"' && src[i+1] == ':' {
					out = append(out, '"')
					out = append(out, src[keyStart:i]...)
					continue
				}

				out = append(out, src[keyStart:i]...)
				continue
			}
			continue
		}

		out = append(out, ch)
		i++
	}

	return string(out)
}
