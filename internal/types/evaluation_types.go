package types

// EntityType 表示外部语言模型服务返回的实体类别
type EntityType string

const (
	// EntityPerson 人名
	EntityPerson EntityType = "PERSON"
	// EntityOrg 组织/公司
	EntityOrg EntityType = "ORG"
	// EntityGPE 地理政治实体（城市、国家）
	EntityGPE EntityType = "GPE"
	// EntityDate 日期和时间段
	EntityDate EntityType = "DATE"
)

// ContactInfo 从原始简历文本中提取的联系方式
// 所有字段都是去重后的集合，可能为空，但永远不为 nil
type ContactInfo struct {
	Emails   []string `json:"emails"`
	Phones   []string `json:"phones"`
	GitHub   []string `json:"github"`
	LinkedIn []string `json:"linkedin"`
}

// NewContactInfo 返回各字段均已初始化为空切片的 ContactInfo
func NewContactInfo() ContactInfo {
	return ContactInfo{
		Emails:   []string{},
		Phones:   []string{},
		GitHub:   []string{},
		LinkedIn: []string{},
	}
}

// EntityBundle 外部实体识别服务的固定四键结果
// 每个类别是限长、保序、去重后的列表；四个键永远存在
type EntityBundle struct {
	Person []string `json:"PERSON"`
	Org    []string `json:"ORG"`
	GPE    []string `json:"GPE"`
	Date   []string `json:"DATE"`
}

// NewEntityBundle 返回四个键均为空切片的 EntityBundle
func NewEntityBundle() EntityBundle {
	return EntityBundle{
		Person: []string{},
		Org:    []string{},
		GPE:    []string{},
		Date:   []string{},
	}
}

// CandidateEvaluation 单个候选人的完整评估记录
// 由流水线构建一次，排序器填入 Rationale 后不再修改
type CandidateEvaluation struct {
	CandidateID     string
	Contact         ContactInfo
	ExtractedSkills []string
	MatchedSkills   []string
	MissingSkills   []string
	// 三个分数均在 [0,100]，保留两位小数
	SkillMatchScore float64
	SemanticScore   float64
	FinalScore      float64
	Entities        EntityBundle
	Rationale       string
}
