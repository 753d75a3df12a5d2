// Package translation translates the sentences a word was looked up in,
// using either the OpenAI or the Gemini API. It includes a translation
// cache so repeated sentences are only sent once per run.
package translation
