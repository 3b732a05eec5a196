// Package template implements the placeholder renderer for mock responses.
//
// A response template is UTF-8 JSON text with embedded ${...} placeholders.
// A placeholder body is either a request echo or a mock value:
//
//	${request.candidate.email}   - value from the incoming request payload
//	${mock.int}                  - random integer
//	${mock.int[1-100]}           - random integer in range
//	${mock.string[6-10]}         - random string with length 6-10
//	${mock.date.now}             - current date, ISO format
//	${mock.email}                - random email address
//	${mock.url}                  - random URL
//	${mock.name}                 - random person name
//	${mock.uuid}                 - random UUID v4
//	${mock.bool}                 - random boolean
//	${mock.enum[a,b,c]}          - random choice from the list
//	${mock.timestamp}            - current Unix timestamp
//	${mock.phone}                - random phone number
//
// There are no loops, conditionals, or nested expressions. Rendering is a
// single non-recursive pass and never fails: unknown mock kinds and
// unresolvable request paths degrade to literal or empty text so the
// response stays servable.
package template
