// Package testutil provides shared test doubles and fixtures.
//
// Provider mocks (mock_providers.go) implement provider.Transcriber,
// provider.Generator and provider.Synthesizer with testify/mock:
//
//	gen := testutil.NewMockGenerator(t)
//	gen.On("Generate", mock.Anything, mock.Anything).Return(testutil.ValidReply, nil)
//
// ScriptedGenerator replays a fixed list of replies, which is handy for retry
// tests. Service mocks (mock_services.go) stand in for the HTTP layer's
// FeedbackService and SpeechService.
package testutil
