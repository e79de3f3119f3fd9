// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources. For every field the
// first source that sets it wins:
//  1. Environment variables (a .env file in the working directory is loaded
//     into the environment first, without overriding existing variables)
//  2. Command-line flags
//  3. JSON config file (path from CONFIG, -c or -config)
//
// Remaining zero fields receive defaults before validation. The main entry
// points are [GetStructuredConfig] for the server and [GetClientConfig] for
// the CLI client.
package config
