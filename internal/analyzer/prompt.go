package analyzer

import "fmt"

const systemPrompt = "You are a document validation expert."

// promptTemplate is kept byte-for-byte compatible with the prompt earlier
// deployments were tuned against, indentation included.
const promptTemplate = `
    You are an expert document validator. The following text is extracted from a document:
    "%s"

    Here are the validation rules:
    %s

    Validate the document based on these rules. Provide a report in the format:
    - "File contain empty fields: [Field name 1], [Field name 2]." if file have any empty fields without any value or information.
    - If only the rules are not followed provide suggestions based on the rules only like:
      1. [Suggestion 1]
      2. [Suggestion 2]
    - "File document is correct." if all rules are met.
    `

// BuildPrompt embeds text and rules verbatim; nothing is escaped.
func BuildPrompt(text, rules string) string {
	return fmt.Sprintf(promptTemplate, text, rules)
}
