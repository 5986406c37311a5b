// Package naming provides consistent logical IDs, export names and resource
// names for the declared CloudFormation resources.
//
// Logical IDs are PascalCase alphanumerics (CloudFormation rejects anything
// else) and stay stable across syntheses so the engine can match declared
// resources to the ones it already created.
package naming
