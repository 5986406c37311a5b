// Package cfn reads and renders CloudFormation templates synthesized by the
// AWS CDK.
//
// Parse turns a synthesized template into a Template: a typed view of its
// parameters, resources and outputs used for summaries and assertions,
// plus the untouched document used for rendering. Encode writes that
// document as JSON or YAML with sorted keys, so identical stacks always
// render byte-identical templates.
package cfn
