// Package commands defines the outreachctl CLI.
//
// Commands
//
//   - serve      Run the console HTTP API
//   - estimate   Print the cost breakdown of a campaign configuration
//   - migrate    Apply database migrations
//   - token      Issue an operator bearer token for AUTH_JWT_SECRET
//
// Configuration comes from the environment (and an optional .env file);
// only estimate runs without it.
package commands
