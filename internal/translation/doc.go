// Package translation provides the remote translation providers used to
// translate individual table cells: OpenAI chat models, Google Gemini,
// Anthropic models on AWS Bedrock and DeepLX endpoints. It also includes a
// circuit breaker decorator and an in-run memo for repeated cell texts.
package translation
