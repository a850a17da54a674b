package types

// naMarker 是对外输出时空集合的占位值，前端依赖它做统一渲染
const naMarker = "NA"

// CandidateResult 是对调用方暴露的单候选人结果（JSON 序列化形态）
// 联系方式和实体列表在为空时替换为 ["NA"]，内部记录保持真实的空切片
type CandidateResult struct {
	CandidateID string   `json:"candidate_id"`
	Emails      []string `json:"emails"`
	Phones      []string `json:"phones"`
	GitHub      []string `json:"github"`
	LinkedIn    []string `json:"linkedin"`

	ExtractedSkills []string `json:"extracted_skills"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`

	SkillMatchScore float64 `json:"skill_match_score"`
	SemanticScore   float64 `json:"semantic_similarity_score"`
	FinalScore      float64 `json:"final_match_score"`

	Entities EntityResult `json:"ner_entities"`

	ShortReason string `json:"short_reason"`
}

// EntityResult 对外输出的实体束，空列表同样替换为 ["NA"]
type EntityResult struct {
	Person []string `json:"PERSON"`
	Org    []string `json:"ORG"`
	GPE    []string `json:"GPE"`
	Date   []string `json:"DATE"`
}

// SkippedFile 记录一个被跳过的输入文件及其原因
type SkippedFile struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// EvaluationResponse 批次级响应信封
type EvaluationResponse struct {
	JobID             string            `json:"job_id"`
	TotalCandidates   int               `json:"total_candidates"`
	Results           []CandidateResult `json:"results"`
	ProcessingTimeMS  int64             `json:"processing_time_ms"`
	ProcessingTimeSec float64           `json:"processing_time_sec"`
	SkippedFiles      []SkippedFile     `json:"skipped_files"`
}

// naList 空列表替换为单元素 "NA" 占位，非空原样返回
func naList(values []string) []string {
	if len(values) > 0 {
		return values
	}
	return []string{naMarker}
}

// emptyList 保证切片非 nil，供 JSON 序列化输出 [] 而非 null
func emptyList(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// ToResult 将内部评估记录转换为对外的结果形态
func (e *CandidateEvaluation) ToResult() CandidateResult {
	return CandidateResult{
		CandidateID:     e.CandidateID,
		Emails:          naList(e.Contact.Emails),
		Phones:          naList(e.Contact.Phones),
		GitHub:          naList(e.Contact.GitHub),
		LinkedIn:        naList(e.Contact.LinkedIn),
		ExtractedSkills: emptyList(e.ExtractedSkills),
		MatchedSkills:   emptyList(e.MatchedSkills),
		MissingSkills:   emptyList(e.MissingSkills),
		SkillMatchScore: e.SkillMatchScore,
		SemanticScore:   e.SemanticScore,
		FinalScore:      e.FinalScore,
		Entities: EntityResult{
			Person: naList(e.Entities.Person),
			Org:    naList(e.Entities.Org),
			GPE:    naList(e.Entities.GPE),
			Date:   naList(e.Entities.Date),
		},
		ShortReason: e.Rationale,
	}
}
