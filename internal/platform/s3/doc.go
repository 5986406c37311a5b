// Package s3 uploads synthesized templates to Amazon S3.
//
// CloudFormation reads templates larger than the inline limit from S3, so
// the publish command stores the template in a bucket and hands the engine
// the object URL. Credentials and region come from the AWS SDK default
// chain unless given explicitly.
package s3
