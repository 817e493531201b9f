// Package model defines the field descriptor vocabulary interpreted by the
// form controller. A Field describes either one input (text, textarea,
// select, date, masked, radio) or, with Section set, a repeatable group whose
// Instances are independent deep copies of SectionFields. Parent fields list
// the names they control in DependentFields; children list the parent values
// that enable them in DependsOnValues and whether enabling also makes them
// required via SetToRequiredWhenEnabled.
//
// Schemas are immutable. The Builder validates descriptors once (unique
// names, known types, resolvable dependency references, compilable regexes)
// and resolves names into an index, so runtime lookups never scan. Runtime
// changes produce new *Schema values through Replace/ReplaceAll.
//
// FormData and Errors share one keying scheme: plain fields by name and
// sections by name plus instance position.
package model
