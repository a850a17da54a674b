package skills

// defaultSynonymGroups 是内置的技能同义词表：规范名 → 全部表面形式（含规范名自身）。
// 这是静态领域知识；如需扩展，通过 WithSynonymGroup 在构建词表时注入，
// 匹配逻辑本身不感知任何同义词规则。
var defaultSynonymGroups = map[string][]string{
	"pytorch":                     {"pytorch", "torch"},
	"c++":                         {"c++", "cpp", "cplusplus"},
	"c#":                          {"c#", "csharp"},
	"machine learning":            {"machine learning", "ml"},
	"deep learning":               {"deep learning", "dl"},
	"natural language processing": {"natural language processing", "nlp"},
	"artificial intelligence":     {"artificial intelligence", "ai"},
	"amazon web services":         {"amazon web services", "aws"},
	"google cloud":                {"google cloud", "gcp", "google cloud platform"},
	"microsoft azure":             {"microsoft azure", "azure"},
	"node.js":                     {"node.js", "nodejs", "node"},
	"react.js":                    {"react.js", "react", "reactjs"},
	"vue.js":                      {"vue.js", "vue", "vuejs"},
	"angular.js":                  {"angular.js", "angular", "angularjs"},
	"tensorflow":                  {"tensorflow", "tf"},
	"kubernetes":                  {"kubernetes", "k8s"},
	"javascript":                  {"javascript", "js"},
	"typescript":                  {"typescript", "ts"},
	"continuous integration":      {"continuous integration", "ci/cd", "ci", "cd"},
	"object oriented programming": {"object oriented programming", "oop"},
	"test driven development":     {"test driven development", "tdd"},
}
