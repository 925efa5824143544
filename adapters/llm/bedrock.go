package llm

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentruntime/types"

	"github.com/MauricioIPastora/portfolio-assistant/config"
	"github.com/MauricioIPastora/portfolio-assistant/domain"
)

// How many knowledge-base chunks the vector search returns per query.
const retrievalTopK = 5

// The template Bedrock fills in: $search_results$ receives the retrieved
// chunks, $query$ the user's question verbatim.
const promptTemplate = `You are Mauricio Pastora's AI assistant on his personal portfolio website.
You help visitors learn about Mauricio's skills, projects, work experience, and certifications.
Be friendly, professional, and concise in your responses.

Context from knowledge base:
$search_results$

User question: $query$

Please provide a helpful response based on the context above. If the information isn't in the context,
say that you don't have that specific information but offer to help with something else.`

// BedrockGenerator answers queries with a single RetrieveAndGenerate call
// against a Bedrock knowledge base. The underlying client is safe for
// concurrent use; the generator carries no per-request state.
type BedrockGenerator struct {
	client          *bedrockagentruntime.Client
	knowledgeBaseID string
	modelArn        string
}

func NewBedrockGenerator(ctx context.Context, cfg config.AWSConfig) (domain.AnswerGenerator, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return &BedrockGenerator{
		client:          bedrockagentruntime.NewFromConfig(awsCfg),
		knowledgeBaseID: cfg.KnowledgeBaseID,
		modelArn:        cfg.ModelArn(),
	}, nil
}

func (g *BedrockGenerator) Answer(ctx context.Context, query string) (domain.Answer, error) {
	out, err := g.client.RetrieveAndGenerate(ctx, &bedrockagentruntime.RetrieveAndGenerateInput{
		Input: &types.RetrieveAndGenerateInput{
			Text: aws.String(query),
		},
		RetrieveAndGenerateConfiguration: &types.RetrieveAndGenerateConfiguration{
			Type: types.RetrieveAndGenerateTypeKnowledgeBase,
			KnowledgeBaseConfiguration: &types.KnowledgeBaseRetrieveAndGenerateConfiguration{
				KnowledgeBaseId: aws.String(g.knowledgeBaseID),
				ModelArn:        aws.String(g.modelArn),
				RetrievalConfiguration: &types.KnowledgeBaseRetrievalConfiguration{
					VectorSearchConfiguration: &types.KnowledgeBaseVectorSearchConfiguration{
						NumberOfResults: aws.Int32(retrievalTopK),
					},
				},
				GenerationConfiguration: &types.GenerationConfiguration{
					PromptTemplate: &types.PromptTemplate{
						TextPromptTemplate: aws.String(promptTemplate),
					},
				},
			},
		},
	})
	if err != nil {
		return domain.Answer{}, fmt.Errorf("retrieve and generate: %w", err)
	}

	answer := domain.Answer{
		Citations: mapCitations(out.Citations),
	}
	if out.Output != nil {
		answer.Text = aws.ToString(out.Output.Text)
	}
	return answer, nil
}

func mapCitations(citations []types.Citation) []domain.Citation {
	if len(citations) == 0 {
		return nil
	}

	mapped := make([]domain.Citation, 0, len(citations))
	for _, c := range citations {
		citation := domain.Citation{}
		if c.GeneratedResponsePart != nil && c.GeneratedResponsePart.TextResponsePart != nil {
			citation.Text = aws.ToString(c.GeneratedResponsePart.TextResponsePart.Text)
		}
		for _, ref := range c.RetrievedReferences {
			reference := domain.Reference{}
			if ref.Content != nil {
				reference.Snippet = aws.ToString(ref.Content.Text)
			}
			if ref.Location != nil && ref.Location.S3Location != nil {
				reference.URI = aws.ToString(ref.Location.S3Location.Uri)
			}
			citation.References = append(citation.References, reference)
		}
		mapped = append(mapped, citation)
	}
	return mapped
}
